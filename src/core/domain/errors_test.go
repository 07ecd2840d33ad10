package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "resource not found: user", NewNotFoundError("user").Error())
	assert.Equal(t, "invalid input: must be positive (field: owner_id)",
		NewValidationError("owner_id", "must be positive").Error())

	cause := errors.New("connection refused")
	assert.Equal(t, "store unavailable: get user by id: connection refused",
		NewStoreError("get user by id", cause).Error())
}

func TestDomainError_Classification(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	storeErr := NewStoreError("search properties", cause)

	assert.True(t, IsStoreUnavailable(storeErr))
	assert.False(t, IsNotFound(storeErr))
	assert.ErrorIs(t, storeErr, cause)

	wrapped := fmt.Errorf("listing reservations: %w", NewNotFoundError("user"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsStoreUnavailable(wrapped))

	assert.True(t, IsConflict(NewConflictError("email already registered")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("invalid credentials")))
	assert.True(t, IsValidationError(NewValidationError("limit", "too large")))
}
