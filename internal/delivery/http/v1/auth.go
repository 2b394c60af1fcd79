package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nexttodo/internal/services"
)

type loginRequest struct {
	Username   string `json:"username" binding:"required,max=255"`
	Password   string `json:"password" binding:"required,max=255"`
	RememberMe bool   `json:"remember_me"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleLogin is the sign-in placeholder: it accepts any non-empty
// credential pair and mints a token naming the single dashboard user.
func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid login request")
		abort(c, newBadRequestError(msgInvalidCredentials))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Username:   req.Username,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			abort(c, newBadRequestError(msgInvalidCredentials))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to login")
		abort(c, newInternalServerError())
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		UserID:    result.UserID,
		ExpiresAt: result.ExpiresAt,
	})
}
