package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/response"
)

// Recovery is a middleware that recovers from panics and returns a 500 error.
// It logs the panic with stack trace for debugging.
//
// This should be one of the first middleware in the chain to catch all panics.
//
// Usage:
//
//	router.Use(middleware.Recovery(logger))
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				log.ErrorContext(c.Request.Context(), "panic recovered",
					"request_id", requestID,
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)

				response.InternalError(c, requestID)
			}
		}()

		c.Next()
	}
}
