package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/response"
	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

// UserIDHeader identifies the calling user.
const UserIDHeader = "X-User-Id"

// UserIDKey is the context key holding the authenticated user id.
const UserIDKey = "user_id"

// RequireUser reads the X-User-Id header, checks that the user exists and
// stores the id in the context under UserIDKey. Requests without a valid user
// are rejected with 400 or 401; store failures are reported as such.
func RequireUser(users ports.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.Unauthorized(c, "missing "+UserIDHeader+" header", requestID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.BadRequest(c, "invalid "+UserIDHeader, requestID)
			return
		}

		if _, err := users.GetUserByID(c.Request.Context(), userID); err != nil {
			if domain.IsNotFound(err) {
				response.Unauthorized(c, "user not found", requestID)
				return
			}
			response.FromDomainError(c, err, requestID)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the id stored by RequireUser.
func CurrentUserID(c *gin.Context) (int64, bool) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := id.(int64)
	return userID, ok
}
