package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nexttodo/internal/models"
	"nexttodo/internal/services"
)

type todoResponse struct {
	ID       int64     `json:"id"`
	Task     string    `json:"task"`
	DueDate  time.Time `json:"due_date"`
	Priority string    `json:"priority"`
	UserID   int64     `json:"user_id"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	return todoResponse{
		ID:       todo.ID,
		Task:     todo.Task,
		DueDate:  todo.DueDate,
		Priority: todo.Priority,
		UserID:   todo.UserID,
	}
}

func (h *handlerImpl) HandleListTodos(c *gin.Context) {
	callerID := h.callerID(c)

	todos, err := h.todos.ListTodos(c, callerID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list todos")
		abort(c, newInternalServerError())
		return
	}

	response := make([]todoResponse, 0, len(todos))
	for i := range todos {
		response = append(response, newTodoResponse(&todos[i]))
	}

	h.logger.Info().
		Int("count", len(response)).
		Msg("fetched todos")
	c.JSON(http.StatusOK, response)
}

type createTodoRequest struct {
	Task     string `json:"task" binding:"required"`
	DueDate  string `json:"due_date" binding:"required"`
	Priority string `json:"priority" binding:"required,oneof=Low Medium High"`
	UserID   int64  `json:"user_id" binding:"required"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	callerID := h.callerID(c)

	var req createTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid create request")
		abort(c, newBadRequestError(msgAllFieldsRequired))
		return
	}

	dueDate, err := models.ParseDueDate(req.DueDate)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid due date")
		abort(c, newBadRequestError(msgInvalidDueDate))
		return
	}

	todo, err := h.todos.CreateTodo(c, callerID, services.CreateTodoParams{
		Task:     req.Task,
		DueDate:  dueDate,
		Priority: req.Priority,
		UserID:   req.UserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			abort(c, newBadRequestError(msgAllFieldsRequired))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create todo")
		abort(c, newInternalServerError())
		return
	}

	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

type updateTodoRequest struct {
	Task     string `json:"task" binding:"required"`
	DueDate  string `json:"due_date" binding:"required"`
	Priority string `json:"priority" binding:"required,oneof=Low Medium High"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	callerID := h.callerID(c)

	todoID, ok := todoIDParam(c)
	if !ok {
		h.logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid todo id")
		abort(c, newNotFoundError(msgTodoNotFound))
		return
	}

	var req updateTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid update request")
		abort(c, newBadRequestError(msgAllFieldsRequired))
		return
	}

	dueDate, err := models.ParseDueDate(req.DueDate)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid due date")
		abort(c, newBadRequestError(msgInvalidDueDate))
		return
	}

	todo, err := h.todos.UpdateTodo(c, callerID, todoID, services.UpdateTodoParams{
		Task:     req.Task,
		DueDate:  dueDate,
		Priority: req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTodoNotFound):
			abort(c, newNotFoundError(msgTodoNotFound))
		case errors.Is(err, services.ErrMissingFields):
			abort(c, newBadRequestError(msgAllFieldsRequired))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update todo")
			abort(c, newInternalServerError())
		}
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	callerID := h.callerID(c)

	todoID, ok := todoIDParam(c)
	if !ok {
		h.logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid todo id")
		abort(c, newNotFoundError(msgTodoNotFound))
		return
	}

	todo, err := h.todos.DeleteTodo(c, callerID, todoID)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			abort(c, newNotFoundError(msgTodoNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete todo")
		abort(c, newInternalServerError())
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// todoIDParam parses the :id route parameter. A non-numeric id cannot
// match any stored row, so callers treat a failure as not-found.
func todoIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
