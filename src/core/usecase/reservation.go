package usecase

import (
	"context"
	"log/slog"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

// ReservationService lists a guest's past stays.
type ReservationService struct {
	repo ports.ReservationRepository
	log  *slog.Logger
}

func NewReservationService(repo ports.ReservationRepository, log *slog.Logger) *ReservationService {
	return &ReservationService{repo: repo, log: log}
}

// ListForGuest returns up to limit completed reservations of guestID.
// A zero limit means domain.DefaultListLimit.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID int64, limit int) ([]domain.ReservationWithProperty, error) {
	if guestID <= 0 {
		return nil, domain.NewValidationError("guest_id", "must be positive")
	}
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReservationsForGuest(ctx, guestID, limit)
}
