// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a task id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownResource is returned for any resource other than ResourceTasks.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout is returned when a backend call exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
)

// Client is the REST-style collaborator the task list talks to.
// Every verb addresses a named resource; only ResourceTasks exists.
// Commands and the UI never import a backend directly.
type Client interface {
	// Fetch returns every task in backend order.
	Fetch(ctx context.Context, resource string) ([]Task, error)

	// Post creates a task.
	Post(ctx context.Context, resource string, body NewTask) error

	// Put sets the completion flag of a task.
	Put(ctx context.Context, resource string, body TaskUpdate) error

	// Delete removes one task, or all tasks when body.ID is AllID.
	Delete(ctx context.Context, resource string, body TaskRef) error
}

// CheckResource returns ErrUnknownResource unless resource is ResourceTasks.
func CheckResource(resource string) error {
	if resource != ResourceTasks {
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return nil
}
