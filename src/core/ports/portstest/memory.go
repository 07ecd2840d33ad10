// Package portstest provides an in-memory implementation of the repository
// ports for use in tests of the layers above the database.
package portstest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

var (
	_ ports.UserRepository        = (*Store)(nil)
	_ ports.ReservationRepository = (*Store)(nil)
	_ ports.PropertyRepository    = (*Store)(nil)
)

// Store keeps users, properties, reservations and reviews in memory and
// mirrors the query semantics of the Postgres repositories.
type Store struct {
	mu           sync.Mutex
	users        []domain.User
	properties   []domain.Property
	reservations []domain.Reservation
	reviews      []domain.PropertyReview

	// Now is used for the "completed stay" cut-off. Defaults to time.Now.
	Now func() time.Time

	// Err, when set, is returned (as a store error) by every operation.
	Err error
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{Now: time.Now}
}

func (s *Store) fail(op string) error {
	if s.Err != nil {
		return domain.NewStoreError(op, s.Err)
	}
	return nil
}

func (s *Store) Health(_ context.Context) error {
	return s.fail("ping")
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("get user by email"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("get user by id"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (s *Store) CreateUser(_ context.Context, nu domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("create user"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == nu.Email {
			return nil, domain.NewConflictError("email already registered")
		}
	}
	u := domain.User{
		ID:       int64(len(s.users) + 1),
		Name:     nu.Name,
		Email:    nu.Email,
		Password: nu.Password,
	}
	s.users = append(s.users, u)
	return &u, nil
}

// AddProperty stores p as is, assigning the next id when p.ID is zero.
func (s *Store) AddProperty(p domain.Property) domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = int64(len(s.properties) + 1)
	}
	s.properties = append(s.properties, p)
	return p
}

// AddReservation stores r, assigning the next id when r.ID is zero.
func (s *Store) AddReservation(r domain.Reservation) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = int64(len(s.reservations) + 1)
	}
	s.reservations = append(s.reservations, r)
	return r
}

// AddReview stores a review of propertyID with the given rating.
func (s *Store) AddReview(propertyID int64, rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, domain.PropertyReview{
		ID:         int64(len(s.reviews) + 1),
		PropertyID: propertyID,
		Rating:     rating,
	})
}

func (s *Store) averageRating(propertyID int64) *float64 {
	var sum, n int
	for _, r := range s.reviews {
		if r.PropertyID == propertyID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

func (s *Store) ListReservationsForGuest(_ context.Context, guestID int64, limit int) ([]domain.ReservationWithProperty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("list reservations for guest"); err != nil {
		return nil, err
	}
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	y, m, d := s.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := []domain.ReservationWithProperty{}
	for _, r := range s.reservations {
		if r.GuestID != guestID || !r.EndDate.Before(today) {
			continue
		}
		p, ok := s.property(r.PropertyID)
		if !ok {
			continue
		}
		out = append(out, domain.ReservationWithProperty{
			Reservation:   r,
			Property:      p,
			AverageRating: s.averageRating(p.ID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) property(id int64) (domain.Property, bool) {
	for _, p := range s.properties {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func (s *Store) SearchProperties(_ context.Context, f domain.PropertyFilter, limit int) ([]domain.PropertyWithRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("search properties"); err != nil {
		return nil, err
	}
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	out := []domain.PropertyWithRating{}
	for _, p := range s.properties {
		if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
			continue
		}
		if f.OwnerID != nil && p.OwnerID != *f.OwnerID {
			continue
		}
		if f.MinimumPricePerNight != nil && p.CostPerNight < *f.MinimumPricePerNight {
			continue
		}
		if f.MaximumPricePerNight != nil && p.CostPerNight > *f.MaximumPricePerNight {
			continue
		}
		avg := s.averageRating(p.ID)
		if f.MinimumRating != nil && (avg == nil || *avg < *f.MinimumRating) {
			continue
		}
		out = append(out, domain.PropertyWithRating{Property: p, AverageRating: avg})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CostPerNight < out[j].CostPerNight
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetPropertyByID(_ context.Context, id int64) (*domain.PropertyWithRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("get property by id"); err != nil {
		return nil, err
	}
	p, ok := s.property(id)
	if !ok {
		return nil, domain.NewNotFoundError("property")
	}
	return &domain.PropertyWithRating{Property: p, AverageRating: s.averageRating(id)}, nil
}

func (s *Store) CreateProperty(_ context.Context, np domain.NewProperty) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("create property"); err != nil {
		return nil, err
	}
	owner := false
	for _, u := range s.users {
		if u.ID == np.OwnerID {
			owner = true
			break
		}
	}
	if !owner {
		return nil, domain.NewValidationError("owner_id", "referenced user does not exist")
	}
	p := domain.Property{
		ID:                int64(len(s.properties) + 1),
		OwnerID:           np.OwnerID,
		Title:             np.Title,
		Description:       np.Description,
		ThumbnailPhotoURL: np.ThumbnailPhotoURL,
		CoverPhotoURL:     np.CoverPhotoURL,
		CostPerNight:      np.CostPerNight,
		ParkingSpaces:     np.ParkingSpaces,
		NumberOfBathrooms: np.NumberOfBathrooms,
		NumberOfBedrooms:  np.NumberOfBedrooms,
		Country:           np.Country,
		Street:            np.Street,
		City:              np.City,
		Province:          np.Province,
		PostCode:          np.PostCode,
		Active:            true,
	}
	s.properties = append(s.properties, p)
	return &p, nil
}
