// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Domain error types for consistent error handling across the application.
// Callers must be able to tell "no result" apart from "the store failed", so every
// repository returns one of these instead of a nil record.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable is returned when the database cannot be reached or a query fails.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict is returned when a write collides with existing state (e.g. duplicate email).
	ErrConflict = errors.New("conflict")
)

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Cause is the driver or library error that triggered this one, if any.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Base.Error()
	switch {
	case e.Field != "":
		msg = fmt.Sprintf("%s: %s (field: %s)", msg, e.Message, e.Field)
	case e.Message != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the base sentinel and the cause to errors.Is/As.
func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Base}
	}
	return []error{e.Base, e.Cause}
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewStoreError reports a failed store operation. op names the operation
// (e.g. "get user by email") and cause is the driver error.
func NewStoreError(op string, cause error) *DomainError {
	return &DomainError{
		Base:    ErrStoreUnavailable,
		Message: op,
		Cause:   cause,
	}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{
		Base:    ErrUnauthorized,
		Message: message,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreUnavailable checks if an error came from a failed store operation.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized checks if an error is unauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
