package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/custopulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Behavior:
//   - Captures start time before request handling.
//   - After request is processed, calculates latency.
//   - Logs method, path, status, latency in ms, body size and request_id (if injected by RequestID()).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"request_id":"123e4567-e89b-12d3-a456-426614174000","method":"POST","path":"/api/v1/report","status":200,"latency_ms":15,"bytes_in":2048}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 4xx at warn, 5xx at error
		ev := logger.L().Info()
		if status >= 500 {
			ev = logger.L().Error()
		} else if status >= 400 {
			ev = logger.L().Warn()
		}
		ev.
			Str("request_id", GetRequestID(c)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Int64("bytes_in", c.Request.ContentLength).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}
