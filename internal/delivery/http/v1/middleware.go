package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nexttodo/internal/models"
)

const (
	requestIDCtxKey = "request_id"
	userIDCtxKey    = "user_id"

	requestIDHeader = "X-Request-ID"
)

// HandleRequestIDMiddleware tags every request with an id for log
// correlation, honoring one supplied by the caller.
func (h *handlerImpl) HandleRequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

// HandleIdentityMiddleware resolves the caller's user id. A valid
// Bearer token names the caller; without one the request runs as the
// single dashboard user. The todo routes stay anonymous-accessible,
// so a missing header is not an error, but a present-and-broken
// token is.
func (h *handlerImpl) HandleIdentityMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		c.Set(userIDCtxKey, models.DefaultUserID)
		c.Next()
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.ParseToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		h.logger.Warn().
			Str("subject", claims.Subject).
			Msg("invalid token subject")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

// callerID reads the identity resolved by the middleware. Handlers
// thread it through every service call even though no authorization
// layer consumes it yet.
func (h *handlerImpl) callerID(c *gin.Context) int64 {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return models.DefaultUserID
	}
	userID, ok := value.(int64)
	if !ok {
		return models.DefaultUserID
	}
	return userID
}
