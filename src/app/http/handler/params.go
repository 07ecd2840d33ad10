package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/response"
	"lightbnb/src/app/middleware"
)

// parseIDParam reads a positive integer path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, name, "must be a positive integer", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// currentUserID returns the id set by middleware.RequireUser.
func currentUserID(c *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "missing "+middleware.UserIDHeader+" header", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// fail attaches err for the logging middleware and writes the mapped response.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	response.FromDomainError(c, err, middleware.GetRequestID(c))
}
