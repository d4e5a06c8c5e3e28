package store

import (
	"context"

	"minitask/internal/service"
)

// Client exposes a Store as a service.Client, the "local" backend.
type Client struct {
	store *Store
}

// NewClient wraps s.
func NewClient(s *Store) *Client {
	return &Client{store: s}
}

// Close closes the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// Fetch implements service.Client.
func (c *Client) Fetch(ctx context.Context, resource string) ([]service.Task, error) {
	if err := service.CheckResource(resource); err != nil {
		return nil, err
	}
	return c.store.List(ctx)
}

// Post implements service.Client.
func (c *Client) Post(ctx context.Context, resource string, body service.NewTask) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	_, err := c.store.Create(ctx, body.TaskName)
	return err
}

// Put implements service.Client.
func (c *Client) Put(ctx context.Context, resource string, body service.TaskUpdate) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	return c.store.SetCompleted(ctx, body.ID, body.Completed)
}

// Delete implements service.Client.
func (c *Client) Delete(ctx context.Context, resource string, body service.TaskRef) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	if body.ID == service.AllID {
		return c.store.DeleteAll(ctx)
	}
	return c.store.Delete(ctx, body.ID)
}
