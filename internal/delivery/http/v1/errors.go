package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response messages the dashboard matches on. Changing any of them is
// a breaking change for deployed clients.
const (
	msgAllFieldsRequired   = "All fields are required"
	msgInvalidDueDate      = "Invalid due date"
	msgTodoNotFound        = "Todo not found"
	msgInvalidCredentials  = "Invalid credentials"
	msgInternalServerError = "Internal server error"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"message": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalServerError() apiError {
	return newAPIError(http.StatusInternalServerError, msgInternalServerError)
}
