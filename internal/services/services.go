package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nexttodo/internal/models"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrMissingFields = errors.New("missing required fields")
)

type TodoService interface {
	// ListTodos returns every stored todo in id order.
	ListTodos(ctx context.Context, callerID int64) ([]models.Todo, error)

	// CreateTodo persists a new todo and returns it with the
	// store-assigned id.
	//
	// It returns ErrMissingFields if any required field is
	// absent or empty.
	CreateTodo(ctx context.Context, callerID int64, params CreateTodoParams) (*models.Todo, error)

	// UpdateTodo replaces the task, due date and priority of the
	// todo with the given id in a single statement.
	//
	// It returns ErrTodoNotFound if no row matches the id and
	// ErrMissingFields if any replacement field is absent or empty.
	UpdateTodo(ctx context.Context, callerID int64, id int64, params UpdateTodoParams) (*models.Todo, error)

	// DeleteTodo removes the todo with the given id and returns
	// its prior contents.
	//
	// It returns ErrTodoNotFound if no row matches the id.
	DeleteTodo(ctx context.Context, callerID int64, id int64) (*models.Todo, error)
}

type AuthService interface {
	// Login issues a signed token for the dashboard user.
	//
	// There is no user registry; any non-empty credential pair is
	// accepted. The token exists so callers can present an explicit
	// identity on later requests.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// ParseToken parses the given token and returns the registered
	// claims, or an error if the token is invalid or expired.
	ParseToken(token string) (*jwt.RegisteredClaims, error)
}

type CreateTodoParams struct {
	Task     string
	DueDate  time.Time
	Priority string
	UserID   int64
}

type UpdateTodoParams struct {
	Task     string
	DueDate  time.Time
	Priority string
}

type LoginParams struct {
	Username   string
	Password   string
	RememberMe bool
}

type LoginResult struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
