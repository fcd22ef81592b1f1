// Package client is the Go client of the tracker API together with the
// view state the front-ends render from.
package client

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

	"tasktracker/internal/models"
)

// ErrUnavailable reports that the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer of the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Session is the result of a successful register or login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ProjectUpdate holds the project fields to change; nil fields are not sent.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// NewTask is the body of a task creation.
type NewTask struct {
	Title       string `json:"title"`
	ProjectID   string `json:"project_id"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// TaskUpdate holds the task fields to change; nil fields are not sent and
// an empty DueDate clears the due date.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// Client calls the tracker API. It is safe to share between goroutines
// as long as SetToken is not called concurrently.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for baseURL (e.g. http://localhost:3000). A nil
// httpClient uses one with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token.
func (c *Client) Token() string { return c.token }

// Health checks that the server answers.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

// Register creates an account and keeps its token.
func (c *Client) Register(ctx context.Context, email, password, name string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

// Login signs in and keeps the token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

// Me returns the user of the current token.
func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u)
	return u, err
}

// Logout revokes the current token and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// ListProjects returns the caller's projects, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &projects)
	return projects, err
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, nil, &p)
	return p, err
}

// CreateProject creates a project; empty description and color take the
// server defaults.
func (c *Client) CreateProject(ctx context.Context, name, description, color string) (models.Project, error) {
	body := map[string]string{"name": name}
	if description != "" {
		body["description"] = description
	}
	if color != "" {
		body["color"] = color
	}
	var p models.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", nil, body, &p)
	return p, err
}

// UpdateProject changes the given fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id string, changes ProjectUpdate) (models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), nil, changes, &p)
	return p, err
}

// DeleteProject deletes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil, nil)
}

// ListTasks returns the caller's tasks narrowed by filter.
func (c *Client) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	q := url.Values{}
	if filter.ProjectID != "" {
		q.Set("project_id", filter.ProjectID)
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Priority != "" {
		q.Set("priority", string(filter.Priority))
	}
	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", q, nil, &tasks)
	return tasks, err
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, nil, &t)
	return t, err
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, task NewTask) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", nil, task, &t)
	return t, err
}

// UpdateTask changes the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id string, changes TaskUpdate) (models.Task, error) {
	var t models.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), nil, changes, &t)
	return t, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
