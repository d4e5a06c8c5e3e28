// Package googletasks implements service.Client on the user's default Google
// Tasks list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"minitask/internal/config"
	"minitask/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks requested per page.
	PageSize = 100

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Client using Google Tasks API.
type Client struct {
	svc     *tasks.Service
	timeout time.Duration
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token.json (run: minitask login)", service.ErrUnauthorized)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid token.json: %v", service.ErrUnauthorized, err)
	}

	// Token source refreshes on its own
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	c, err := NewWithHTTPClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout()
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client. Extra options
// (e.g. option.WithEndpoint for a test server) are passed to the API.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, timeout: 5 * time.Second}, nil
}

// Fetch returns open and completed tasks of the default list in API order.
func (c *Client) Fetch(ctx context.Context, resource string) ([]service.Task, error) {
	if err := service.CheckResource(resource); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := []service.Task{}
	err := c.svc.Tasks.List(DefaultListID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, service.Task{
					ID:        service.ID(t.Id),
					Text:      t.Title,
					Completed: t.Status == statusCompleted,
				})
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// Post creates a task in the default list.
func (c *Client) Post(ctx context.Context, resource string, body service.NewTask) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(DefaultListID, &tasks.Task{Title: body.TaskName}).Context(ctx).Do()
	return wrapError(err)
}

// Put sets the task status to completed or needsAction.
func (c *Client) Put(ctx context.Context, resource string, body service.TaskUpdate) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	patch := &tasks.Task{Status: statusNeedsAction, NullFields: []string{"Completed"}}
	if body.Completed {
		patch = &tasks.Task{Status: statusCompleted}
	}
	_, err := c.svc.Tasks.Patch(DefaultListID, string(body.ID), patch).Context(ctx).Do()
	return wrapError(err)
}

// Delete removes one task, or every task in the default list for AllID.
// Google Tasks has no bulk delete, so the "all" form deletes one by one.
func (c *Client) Delete(ctx context.Context, resource string, body service.TaskRef) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}
	if body.ID != service.AllID {
		return c.deleteOne(ctx, body.ID)
	}

	all, err := c.Fetch(ctx, resource)
	if err != nil {
		return err
	}
	for _, t := range all {
		if err := c.deleteOne(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) deleteOne(ctx context.Context, id service.ID) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return wrapError(c.svc.Tasks.Delete(DefaultListID, string(id)).Context(ctx).Do())
}

// wrapError maps API errors to service sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return service.ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: minitask login)", service.ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", service.ErrNotFound, apiErr.Message)
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token expired or revoked (run: minitask login)", service.ErrUnauthorized)
	}

	return err
}
