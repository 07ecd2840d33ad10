package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightbnb/src/core/domain"
)

func TestFromDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{name: "not found", err: domain.NewNotFoundError("property"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "validation", err: fmt.Errorf("search: %w", domain.NewValidationError("limit", "must be at most 100")), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR", wantField: "limit"},
		{name: "conflict", err: domain.NewConflictError("email already registered"), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "unauthorized", err: domain.NewUnauthorizedError("invalid email or password"), wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "store unavailable", err: domain.NewStoreError("search properties", errors.New("dial tcp: refused")), wantStatus: http.StatusServiceUnavailable, wantCode: "STORE_UNAVAILABLE"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromDomainError(c, tt.err, "req-1")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var body Error
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantField, body.Error.Field)
			assert.Equal(t, "req-1", body.Error.RequestID)
		})
	}
}

func TestFromDomainError_HidesStoreCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromDomainError(c, domain.NewStoreError("get user by id", errors.New("password authentication failed for user vagrant")), "")

	assert.NotContains(t, w.Body.String(), "vagrant")
}
