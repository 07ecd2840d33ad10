package usecase

import (
	"context"
	"log/slog"
	"strings"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

// PropertyService handles property search and listing creation.
type PropertyService struct {
	repo ports.PropertyRepository
	log  *slog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, log *slog.Logger) *PropertyService {
	return &PropertyService{repo: repo, log: log}
}

// Search returns up to limit properties matching filter, cheapest first.
func (s *PropertyService) Search(ctx context.Context, filter domain.PropertyFilter, limit int) ([]domain.PropertyWithRating, error) {
	filter.City = strings.TrimSpace(filter.City)
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchProperties(ctx, filter, limit)
}

// Get returns a single property with its rating.
func (s *PropertyService) Get(ctx context.Context, id int64) (*domain.PropertyWithRating, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("property_id", "must be positive")
	}
	return s.repo.GetPropertyByID(ctx, id)
}

// Create validates and persists a new property.
func (s *PropertyService) Create(ctx context.Context, in domain.NewProperty) (*domain.Property, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p, err := s.repo.CreateProperty(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("property created", "property_id", p.ID, "owner_id", p.OwnerID)
	return p, nil
}
