// Package backend talks to the hobby REST API and provides the seams the
// wizard uses to persist what it created.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pablasso/hobbytrack/internal/hobby"
)

// DefaultBaseURL is the local backend the front-end was built against.
const DefaultBaseURL = "http://localhost:8080"

// API paths.
const (
	PathHobbyView  = "/api/hobby/view"
	PathHobbyNew   = "/api/hobby/create"
	PathGoalView   = "/api/goal/view"
	PathGoalNew    = "/api/goal/create"
	PathTaskView   = "/api/task/view"
	PathTaskNew    = "/api/task/create"
	PathHealth     = "/health"
	defaultTimeout = 10 * time.Second
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.Path, e.Status)
}

// Client is a JSON client for the hobby API.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for base. An empty base uses DefaultBaseURL.
func NewClient(base string, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

// ListHobbies returns the hobby catalog in the order the backend sends it.
func (c *Client) ListHobbies(ctx context.Context) ([]hobby.Hobby, error) {
	var out []hobby.Hobby
	if err := c.getJSON(ctx, PathHobbyView, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHobby persists h and returns the stored record with its server id.
func (c *Client) CreateHobby(ctx context.Context, h hobby.Hobby) (hobby.Hobby, error) {
	var out hobby.Hobby
	if err := c.post(ctx, PathHobbyNew, h, &out); err != nil {
		return hobby.Hobby{}, err
	}
	return out, nil
}

// ListGoals returns every stored goal.
func (c *Client) ListGoals(ctx context.Context) ([]hobby.Goal, error) {
	var out []hobby.Goal
	if err := c.getJSON(ctx, PathGoalView, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGoal persists g and returns the stored record with its server id.
func (c *Client) CreateGoal(ctx context.Context, g hobby.Goal) (hobby.Goal, error) {
	var out hobby.Goal
	if err := c.post(ctx, PathGoalNew, g, &out); err != nil {
		return hobby.Goal{}, err
	}
	return out, nil
}

// CreateTask persists t and returns the stored record with its server id.
func (c *Client) CreateTask(ctx context.Context, t hobby.Task) (hobby.Task, error) {
	var out hobby.Task
	if err := c.post(ctx, PathTaskNew, t, &out); err != nil {
		return hobby.Task{}, err
	}
	return out, nil
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+PathHealth, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: http.MethodGet, Path: PathHealth, Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: http.MethodPost, Path: path, Code: resp.StatusCode, Status: resp.Status}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
