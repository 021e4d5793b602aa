package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/custopulse/internal/domain/dto"
	"github.com/guttosm/custopulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 response,
// unless a handler already wrote one.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	err := c.Errors.Last().Err
	logger.L().Error().
		Str("request_id", GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("request failed")

	if !c.Writer.Written() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
	}
}

// AbortWithError writes the standard error body with status and stops the chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
