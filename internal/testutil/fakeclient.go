// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"minitask/internal/service"
)

// Call records one invocation of a service.Client verb.
type Call struct {
	Method   string // "fetch", "post", "put" or "delete"
	Resource string
	Body     any // nil for fetch; otherwise the payload value
}

// FakeClient is an in-memory implementation of service.Client for testing.
// It records every call in order and keeps a task list that writes mutate,
// so a refetch after a write observes the write.
type FakeClient struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  []Call

	// Error injection for testing
	FetchErr  error
	PostErr   error
	PutErr    error
	DeleteErr error

	// DeleteErrFor fails deletes of specific ids only.
	DeleteErrFor map[service.ID]error
}

// NewFakeClient creates an empty FakeClient. New ids start at 1.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		nextID:       1,
		DeleteErrFor: make(map[service.ID]error),
	}
}

// SetTasks replaces the stored list, as if the backend already held it.
func (f *FakeClient) SetTasks(tasks ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]service.Task(nil), tasks...)
	for _, t := range tasks {
		if n, err := strconv.Atoi(string(t.ID)); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
	}
}

// AddTask appends a task with a generated id and returns it.
func (f *FakeClient) AddTask(text string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.newID(), Text: text, Completed: completed}
	f.tasks = append(f.tasks, t)
	return t
}

// Stored returns a copy of the stored list without recording a call.
func (f *FakeClient) Stored() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns every recorded call in order.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls of one method.
func (f *FakeClient) CallsTo(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets the recorded calls.
func (f *FakeClient) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeClient) record(method, resource string, body any) {
	f.calls = append(f.calls, Call{Method: method, Resource: resource, Body: body})
}

func (f *FakeClient) newID() service.ID {
	id := service.ID(strconv.Itoa(f.nextID))
	f.nextID++
	return id
}

// Fetch implements service.Client.
func (f *FakeClient) Fetch(ctx context.Context, resource string) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch", resource, nil)

	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	if err := service.CheckResource(resource); err != nil {
		return nil, err
	}
	return append([]service.Task(nil), f.tasks...), nil
}

// Post implements service.Client.
func (f *FakeClient) Post(ctx context.Context, resource string, body service.NewTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("post", resource, body)

	if f.PostErr != nil {
		return f.PostErr
	}
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	f.tasks = append(f.tasks, service.Task{ID: f.newID(), Text: body.TaskName})
	return nil
}

// Put implements service.Client.
func (f *FakeClient) Put(ctx context.Context, resource string, body service.TaskUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("put", resource, body)

	if f.PutErr != nil {
		return f.PutErr
	}
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	for i, t := range f.tasks {
		if t.ID == body.ID {
			f.tasks[i].Completed = body.Completed
			return nil
		}
	}
	return service.ErrNotFound
}

// Delete implements service.Client.
func (f *FakeClient) Delete(ctx context.Context, resource string, body service.TaskRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete", resource, body)

	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if err, ok := f.DeleteErrFor[body.ID]; ok && err != nil {
		return err
	}
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	if body.ID == service.AllID {
		f.tasks = nil
		return nil
	}
	for i, t := range f.tasks {
		if t.ID == body.ID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}
