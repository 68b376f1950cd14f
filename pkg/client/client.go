package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides typed access to the productivity API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:5000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// User reflects API user payloads.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// AuthResult is the payload emitted by register/login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Task reflects API task payloads.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssignedBy  string    `json:"assignedBy"`
	UserID      string    `json:"userId"`
	DueDate     time.Time `json:"dueDate"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskInput carries task fields for create and update calls. Nil fields are
// omitted from the request body.
type TaskInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssignedBy  *string `json:"assignedBy,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
}

// Participant carries a message participant's display fields.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Message reflects API message payloads, with participants expanded.
type Message struct {
	ID        string      `json:"id"`
	Sender    Participant `json:"senderId"`
	Receiver  Participant `json:"receiverId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Register creates an account and returns the signed-in session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches every other account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasks fetches the caller's tasks.
func (c *Client) ListTasks(ctx context.Context, token string) ([]Task, error) {
	var out []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task owned by the caller.
func (c *Client) CreateTask(ctx context.Context, token string, input TaskInput) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", input, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask applies a partial update to the caller's task.
func (c *Client) UpdateTask(ctx context.Context, token, id string, input TaskInput) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, input, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes the caller's task.
func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, token, nil)
}

// ListMessages fetches every message the caller sent or received.
func (c *Client) ListMessages(ctx context.Context, token string) ([]Message, error) {
	var out []Message
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage persists a message to the given receiver.
func (c *Client) SendMessage(ctx context.Context, token, receiverID, content string) (*Message, error) {
	body := map[string]string{"receiverId": receiverID, "content": content}
	var out Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", body, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage removes a message the caller participates in.
func (c *Client) DeleteMessage(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/messages/"+id, nil, token, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractError(resp.Body)
		return APIError{Status: resp.StatusCode, Message: msg}
	}

	if v == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(payload.Message)
}
