package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout caps every API call; a hung request must not block
// its interaction forever.
const DefaultTimeout = 10 * time.Second

// Todo is the wire shape of one record as the API returns it.
type Todo struct {
	ID       int64     `json:"id"`
	Task     string    `json:"task"`
	DueDate  time.Time `json:"due_date"`
	Priority string    `json:"priority"`
	UserID   int64     `json:"user_id"`
}

// NewTodo carries the caller-supplied fields of a create request.
// The due date travels as a plain calendar date string.
type NewTodo struct {
	Task     string `json:"task"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
	UserID   int64  `json:"user_id"`
}

// TodoUpdate is the full replacement payload of an update request.
type TodoUpdate struct {
	Task     string `json:"task"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}

// APIError is a non-2xx response decoded from the server's error
// envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the todo API. It is not safe for concurrent use
// while Login is in flight; after login the token is read-only.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// Login exchanges credentials for a token and remembers it for later
// calls. It returns the server-assigned user id.
func (c *Client) Login(ctx context.Context, username, password string, rememberMe bool) (int64, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{
		Username:   username,
		Password:   password,
		RememberMe: rememberMe,
	}, &resp)
	if err != nil {
		return 0, err
	}

	c.token = resp.Token
	return resp.UserID, nil
}

func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	err := c.do(ctx, http.MethodGet, "/todos", nil, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, todo NewTodo) (*Todo, error) {
	var created Todo
	err := c.do(ctx, http.MethodPost, "/todos", todo, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) (*Todo, error) {
	var updated Todo
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", id), update, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) (*Todo, error) {
	var deleted Todo
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	}
	return apiErr
}
