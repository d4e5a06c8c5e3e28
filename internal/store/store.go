// Package store persists tasks in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"minitask/internal/service"
)

//go:embed schema.sql
var schemaSQL string

// Store handles SQLite operations for tasks.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all tasks in insertion order.
func (s *Store) List(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, completed FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		var (
			id        int64
			task      service.Task
			completed int
		)
		if err := rows.Scan(&id, &task.Text, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.ID = service.ID(fmt.Sprint(id))
		task.Completed = completed != 0
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Create inserts a new open task and returns it.
func (s *Store) Create(ctx context.Context, text string) (service.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (text, completed, created_at) VALUES (?, 0, ?)`,
		text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return service.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return service.Task{}, fmt.Errorf("failed to read task id: %w", err)
	}
	return service.Task{ID: service.ID(fmt.Sprint(id)), Text: text}, nil
}

// SetCompleted updates the completion flag of a task.
func (s *Store) SetCompleted(ctx context.Context, id service.ID, completed bool) error {
	n, err := id.Int64()
	if err != nil {
		return err
	}
	flag := 0
	if completed {
		flag = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, flag, n)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes one task.
func (s *Store) Delete(ctx context.Context, id service.ID) error {
	n, err := id.Int64()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, n)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res, id)
}

// DeleteAll removes every task.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, id service.ID) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %s", service.ErrNotFound, id)
	}
	return nil
}
