package services

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"nexttodo/internal/models"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTodoService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *todoServiceImpl) ListTodos(ctx context.Context, callerID int64) ([]models.Todo, error) {
	const selectTodosQuery = `
SELECT id, task, due_date, priority, user_id
FROM nexttodos
ORDER BY id
`
	rows, err := s.pgPool.Query(ctx, selectTodosQuery)
	if err != nil {
		s.logStorageError(err, "failed to select todos")
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var todo models.Todo
		err = rows.Scan(
			&todo.ID,
			&todo.Task,
			&todo.DueDate,
			&todo.Priority,
			&todo.UserID,
		)
		if err != nil {
			s.logStorageError(err, "failed to scan todo")
			return nil, err
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logStorageError(err, "failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int64("caller_id", callerID).
		Int("count", len(todos)).
		Msg("selected todos")
	return todos, nil
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, callerID int64, params CreateTodoParams) (*models.Todo, error) {
	if params.Task == "" || params.DueDate.IsZero() ||
		!models.IsValidPriority(params.Priority) || params.UserID == 0 {
		return nil, ErrMissingFields
	}

	todo := models.Todo{
		Task:     params.Task,
		DueDate:  params.DueDate,
		Priority: params.Priority,
		UserID:   params.UserID,
	}

	const insertTodoQuery = `
INSERT INTO nexttodos (task, due_date, priority, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertTodoQuery,
		todo.Task,
		todo.DueDate,
		todo.Priority,
		todo.UserID,
	).Scan(&todo.ID)
	if err != nil {
		s.logStorageError(err, "failed to insert todo")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Int64("caller_id", callerID).
		Msg("created todo")
	return &todo, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, callerID int64, id int64, params UpdateTodoParams) (*models.Todo, error) {
	if params.Task == "" || params.DueDate.IsZero() || !models.IsValidPriority(params.Priority) {
		return nil, ErrMissingFields
	}

	todo := models.Todo{
		ID:       id,
		Task:     params.Task,
		DueDate:  params.DueDate,
		Priority: params.Priority,
	}

	const updateTodoQuery = `
UPDATE nexttodos SET task = $1, due_date = $2, priority = $3
WHERE id = $4
RETURNING user_id
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTodoQuery,
		todo.Task,
		todo.DueDate,
		todo.Priority,
		todo.ID,
	).Scan(&todo.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("todo_id", id).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logStorageError(err, "failed to update todo")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Int64("caller_id", callerID).
		Msg("updated todo")
	return &todo, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, callerID int64, id int64) (*models.Todo, error) {
	todo := models.Todo{ID: id}

	const deleteTodoQuery = `
DELETE FROM nexttodos
WHERE id = $1
RETURNING task, due_date, priority, user_id
`
	err := s.pgPool.QueryRow(
		ctx,
		deleteTodoQuery,
		todo.ID,
	).Scan(
		&todo.Task,
		&todo.DueDate,
		&todo.Priority,
		&todo.UserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("todo_id", id).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logStorageError(err, "failed to delete todo")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Int64("caller_id", callerID).
		Msg("deleted todo")
	return &todo, nil
}

// logStorageError records operator-relevant detail for a storage
// failure. Callers still receive the raw error and are expected to
// surface only an opaque message.
func (s *todoServiceImpl) logStorageError(err error, msg string) {
	event := s.logger.Error().Err(err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		event = event.
			Str("pg_code", pgErr.Code).
			Bool("constraint_violation", pgerrcode.IsIntegrityConstraintViolation(pgErr.Code))
	}
	event.Msg(msg)
}
