package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nexttodo/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRequestIDMiddleware(c *gin.Context)
	HandleIdentityMiddleware(c *gin.Context)

	HandleListTodos(c *gin.Context)
	HandleCreateTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	todos  services.TodoService
	auth   services.AuthService
}

func New(
	logger zerolog.Logger,
	todoService services.TodoService,
	authService services.AuthService,
) Handler {
	return &handlerImpl{
		logger: logger,
		todos:  todoService,
		auth:   authService,
	}
}
