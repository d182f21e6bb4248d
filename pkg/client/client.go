// Package client implements a typed HTTP client for the tasks API. Requests are traced with otelhttp
// and the access token is refreshed once when the server answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Task is a task as returned by the API.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	User        int64     `json:"user"`
}

// TaskFields is the body used for creating and updating tasks, nil fields are omitted.
type TaskFields struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// Error is returned for every non 2xx response.
type Error struct {
	StatusCode  int
	Message     string            `json:"error"`
	Validations map[string]string `json:"validations"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}

	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Client calls the tasks API on behalf of one user.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	access  string
	refresh string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New instantiates the Client, baseURL is the server root, for example "http://localhost:9234".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport), Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login obtains the token pair used by the rest of the calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var res struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}

	body := map[string]string{"username": username, "password": password}

	if err := c.do(ctx, http.MethodPost, "/api/token/", body, &res, false); err != nil {
		return err
	}

	c.mu.Lock()
	c.access, c.refresh = res.Access, res.Refresh
	c.mu.Unlock()

	return nil
}

// Refresh obtains a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refresh
	c.mu.Unlock()

	var res struct {
		Access string `json:"access"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/token/refresh/", map[string]string{"refresh": refresh}, &res, false); err != nil {
		return err
	}

	c.mu.Lock()
	c.access = res.Access
	c.mu.Unlock()

	return nil
}

// CreateTask creates a task owned by the logged in user.
func (c *Client) CreateTask(ctx context.Context, fields TaskFields) (Task, error) {
	var res Task

	if err := c.do(ctx, http.MethodPost, "/api/tasks/", fields, &res, true); err != nil {
		return Task{}, err
	}

	return res, nil
}

// Task returns the task with id.
func (c *Client) Task(ctx context.Context, id int64) (Task, error) {
	var res Task

	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &res, true); err != nil {
		return Task{}, err
	}

	return res, nil
}

// UpdateTask changes only the fields set.
func (c *Client) UpdateTask(ctx context.Context, id int64, fields TaskFields) (Task, error) {
	var res Task

	if err := c.do(ctx, http.MethodPatch, taskPath(id), fields, &res, true); err != nil {
		return Task{}, err
	}

	return res, nil
}

// DeleteTask removes the task with id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, true)
}

// SearchTasks lists the tasks matching search, ordering follows the API syntax, e.g. "-priority,deadline".
func (c *Client) SearchTasks(ctx context.Context, search, ordering string) ([]Task, error) {
	q := url.Values{}

	if search != "" {
		q.Set("search", search)
	}

	if ordering != "" {
		q.Set("ordering", ordering)
	}

	path := "/api/tasks/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res []Task

	if err := c.do(ctx, http.MethodGet, path, nil, &res, true); err != nil {
		return nil, err
	}

	return res, nil
}

func taskPath(id int64) string {
	return "/api/tasks/" + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, body, target interface{}, authenticated bool) error {
	var payload []byte

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		payload = b
	}

	res, err := c.send(ctx, method, path, payload, authenticated)
	if err != nil {
		return err
	}

	if res.StatusCode == http.StatusUnauthorized && authenticated {
		_ = res.Body.Close()

		if err := c.Refresh(ctx); err != nil {
			return fmt.Errorf("refreshing token: %w", err)
		}

		if res, err = c.send(ctx, method, path, payload, authenticated); err != nil {
			return err
		}
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		cerr := &Error{StatusCode: res.StatusCode}
		_ = json.NewDecoder(res.Body).Decode(cerr)

		return cerr
	}

	if target == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, authenticated bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		c.mu.Lock()
		req.Header.Set("Authorization", "Bearer "+c.access)
		c.mu.Unlock()
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}

	return res, nil
}
