package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/custopulse/internal/domain/dto"
	"github.com/guttosm/custopulse/internal/logger"
)

// RecoveryMiddleware turns a panic in any later handler into a 500 with the
// standard error body. The panic value, stack and request coordinates are
// logged so a failed upload can be matched to its X-Request-ID.
//
// If the handler already started streaming a document, only the log entry
// is written; the status line cannot be changed anymore.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.L().Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
		}()

		c.Next()
	}
}
