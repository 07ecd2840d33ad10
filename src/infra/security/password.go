// Package security implements password hashing with bcrypt.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with a fixed bcrypt cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash creates a bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", domain.NewValidationError("password", "exceeds maximum length of 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks password against hash. A mismatch is reported as an
// unauthorized domain error; a malformed hash is returned as is.
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.NewUnauthorizedError("password mismatch")
		}
		return err
	}
	return nil
}
