// Package rest implements service.Client over HTTP+JSON.
//
// Wire format, relative to the base URL:
//
//	GET    /tasks                          -> [{"id":1,"text":"A","completed":false}]
//	POST   /tasks {"taskName":"A"}
//	PUT    /tasks {"id":1,"completed":true}
//	DELETE /tasks {"id":1} | {"id":"all"}
//
// Error responses carry {"error":"message"}.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"minitask/internal/config"
	"minitask/internal/service"
)

// DefaultTimeout is the per-call timeout when none is configured.
const DefaultTimeout = 5 * time.Second

// Client implements service.Client against a REST endpoint.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

// New creates a client from cfg. When cfg.Token is set every request
// carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient := http.DefaultClient
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return NewWithHTTPClient(cfg.BaseURL, httpClient, cfg.Timeout())
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: %s", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{base: base, http: httpClient, timeout: timeout}, nil
}

// Fetch implements service.Client.
func (c *Client) Fetch(ctx context.Context, resource string) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, resource, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Post implements service.Client.
func (c *Client) Post(ctx context.Context, resource string, body service.NewTask) error {
	return c.do(ctx, http.MethodPost, resource, body, nil)
}

// Put implements service.Client.
func (c *Client) Put(ctx context.Context, resource string, body service.TaskUpdate) error {
	return c.do(ctx, http.MethodPut, resource, body, nil)
}

// Delete implements service.Client.
func (c *Client) Delete(ctx context.Context, resource string, body service.TaskRef) error {
	return c.do(ctx, http.MethodDelete, resource, body, nil)
}

func (c *Client) do(ctx context.Context, method, resource string, body, out any) error {
	if err := service.CheckResource(resource); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(resource).String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError turns a non-2xx response into an error, keeping the server's
// message when it sent one.
func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", service.ErrNotFound, msg)
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}
}

// wrapError maps transport errors to service sentinels.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return service.ErrTimeout
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %v", service.ErrUnauthorized, err)
	}
	return err
}
