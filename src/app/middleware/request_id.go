// Package middleware contains HTTP middleware for the Gin router.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header used for request tracing.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the context key for storing the request ID.
const RequestIDKey = "request_id"

// maxRequestIDLen caps client-supplied ids before they reach the logs.
const maxRequestIDLen = 128

// RequestID reuses an incoming X-Request-ID (from a proxy or the client) or
// generates a UUID, then stores it in the context and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
