// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"lightbnb/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// UserRepository reads and creates users.
type UserRepository interface {
	Repository

	// GetUserByEmail matches the email exactly (case-sensitive).
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	// CreateUser stores u as given; u.Password must already be hashed.
	CreateUser(ctx context.Context, u domain.NewUser) (*domain.User, error)
}

// ReservationRepository lists reservations.
type ReservationRepository interface {
	Repository

	// ListReservationsForGuest returns the guest's completed stays (end date
	// before today), oldest first, at most limit entries. A zero limit means
	// domain.DefaultListLimit; limits outside [1, domain.MaxListLimit] are
	// a validation error.
	ListReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]domain.ReservationWithProperty, error)
}

// PropertyRepository searches and creates properties.
type PropertyRepository interface {
	Repository

	// SearchProperties returns properties matching every criterion in filter,
	// cheapest first, at most limit entries. limit follows the same rules as
	// ListReservationsForGuest.
	SearchProperties(ctx context.Context, filter domain.PropertyFilter, limit int) ([]domain.PropertyWithRating, error)
	GetPropertyByID(ctx context.Context, id int64) (*domain.PropertyWithRating, error)
	CreateProperty(ctx context.Context, p domain.NewProperty) (*domain.Property, error)
}
