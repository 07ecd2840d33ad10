package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logging emits one structured line per request. Bodies are never logged
// because login and registration requests carry passwords.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if id, ok := CurrentUserID(c); ok {
			fields = append(fields, "user_id", id)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.ErrorContext(ctx, "request", fields...)
		case status >= 400:
			log.WarnContext(ctx, "request", fields...)
		default:
			log.InfoContext(ctx, "request", fields...)
		}
	}
}
