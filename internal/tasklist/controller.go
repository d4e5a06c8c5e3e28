// Package tasklist holds the to-do list state and mediates every mutation
// through a service.Client. The in-memory list is only ever replaced by a
// full refetch; writes never patch it locally.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"minitask/internal/service"
)

// ErrIndexOutOfRange is returned when an index does not address a task in
// the current snapshot.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// ClearCompletedPrompt is shown before completed tasks are deleted.
const ClearCompletedPrompt = "Delete completed tasks?"

// Controller owns the task snapshot and the FAQ modal flag.
type Controller struct {
	client  service.Client
	confirm Confirmer
	logger  zerolog.Logger

	mu        sync.RWMutex
	tasks     []service.Task
	showModal bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for backend call tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithConfirmer sets the collaborator consulted by ClearCompleted.
func WithConfirmer(confirm Confirmer) Option {
	return func(c *Controller) {
		c.confirm = confirm
	}
}

// New creates a Controller with an empty snapshot. Without WithConfirmer,
// ClearCompleted is always declined.
func New(client service.Client, opts ...Option) *Controller {
	c := &Controller{
		client:  client,
		confirm: ConfirmFunc(func(string) bool { return false }),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tasks returns a copy of the last fetched snapshot.
func (c *Controller) Tasks() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// ShowModal reports whether the FAQ modal is visible.
func (c *Controller) ShowModal() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.showModal
}

// ShowFAQModal makes the FAQ modal visible.
func (c *Controller) ShowFAQModal() {
	c.mu.Lock()
	c.showModal = true
	c.mu.Unlock()
}

// HideModal hides the FAQ modal.
func (c *Controller) HideModal() {
	c.mu.Lock()
	c.showModal = false
	c.mu.Unlock()
}

// IncompleteCount is the number of tasks not yet completed.
func (c *Controller) IncompleteCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, t := range c.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether no task is left open.
// An empty list counts as all completed.
func (c *Controller) AllCompleted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// NoneCompleted reports whether no task is completed.
func (c *Controller) NoneCompleted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.Completed {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the snapshot holds no tasks.
func (c *Controller) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks) == 0
}

// Refetch replaces the snapshot with the backend's current list.
// On failure the previous snapshot is kept.
func (c *Controller) Refetch(ctx context.Context) error {
	tasks, err := c.client.Fetch(ctx, service.ResourceTasks)
	if err != nil {
		c.logger.Debug().Err(err).Msg("fetch failed")
		return fmt.Errorf("fetch tasks: %w", err)
	}
	c.logger.Debug().
		Str("resource", service.ResourceTasks).
		Int("count", len(tasks)).
		Msg("fetched tasks")

	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	return nil
}

// AddTask creates a task with the given text and refetches.
func (c *Controller) AddTask(ctx context.Context, text string) error {
	err := c.client.Post(ctx, service.ResourceTasks, service.NewTask{TaskName: text})
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	c.logger.Debug().Str("text", text).Msg("posted task")
	return c.Refetch(ctx)
}

// DeleteTaskAt deletes the task at index in the current snapshot and refetches.
func (c *Controller) DeleteTaskAt(ctx context.Context, index int) error {
	task, err := c.taskAt(index)
	if err != nil {
		return err
	}
	if err := c.client.Delete(ctx, service.ResourceTasks, service.TaskRef{ID: task.ID}); err != nil {
		return fmt.Errorf("delete task %s: %w", task.ID, err)
	}
	c.logger.Debug().Stringer("id", task.ID).Msg("deleted task")
	return c.Refetch(ctx)
}

// ToggleTaskAt flips the completion flag of the task at index and refetches.
func (c *Controller) ToggleTaskAt(ctx context.Context, index int) error {
	task, err := c.taskAt(index)
	if err != nil {
		return err
	}
	update := service.TaskUpdate{ID: task.ID, Completed: !task.Completed}
	if err := c.client.Put(ctx, service.ResourceTasks, update); err != nil {
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	c.logger.Debug().
		Stringer("id", task.ID).
		Bool("completed", update.Completed).
		Msg("updated task")
	return c.Refetch(ctx)
}

// ClearAll deletes every task and refetches.
func (c *Controller) ClearAll(ctx context.Context) error {
	if err := c.client.Delete(ctx, service.ResourceTasks, service.TaskRef{ID: service.AllID}); err != nil {
		return fmt.Errorf("clear all tasks: %w", err)
	}
	c.logger.Debug().Msg("cleared all tasks")
	return c.Refetch(ctx)
}

// ClearCompleted asks for confirmation, then deletes each completed task one
// at a time and refetches. Declining issues no calls. A failed delete stops
// the sweep; the list is still refetched because earlier deletes went through.
func (c *Controller) ClearCompleted(ctx context.Context) error {
	if !c.confirm.Confirm(ClearCompletedPrompt) {
		c.logger.Debug().Msg("clear completed declined")
		return nil
	}

	var deleteErr error
	for _, task := range c.Tasks() {
		if !task.Completed {
			continue
		}
		if err := c.client.Delete(ctx, service.ResourceTasks, service.TaskRef{ID: task.ID}); err != nil {
			deleteErr = fmt.Errorf("delete task %s: %w", task.ID, err)
			break
		}
		c.logger.Debug().Stringer("id", task.ID).Msg("deleted completed task")
	}

	return errors.Join(deleteErr, c.Refetch(ctx))
}

func (c *Controller) taskAt(index int) (service.Task, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return c.tasks[index], nil
}
