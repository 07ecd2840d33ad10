package dto

import (
	"math"
	"strconv"
	"strings"
	"time"

	"lightbnb/src/core/domain"
)

// SearchPropertiesQuery binds the query string of GET /v1/properties.
// Numeric criteria are bound as text so that a blank value, as submitted by
// an untouched form field, imposes no constraint instead of meaning zero.
type SearchPropertiesQuery struct {
	City                 string `form:"city"`
	OwnerID              string `form:"owner_id"`
	MinimumPricePerNight string `form:"minimum_price_per_night"`
	MaximumPricePerNight string `form:"maximum_price_per_night"`
	MinimumRating        string `form:"minimum_rating"`
	Limit                string `form:"limit"`
}

// Filter parses the numeric criteria. Blank ones stay nil.
func (q SearchPropertiesQuery) Filter() (domain.PropertyFilter, error) {
	f := domain.PropertyFilter{City: q.City}
	var err error
	if f.OwnerID, err = optionalInt("owner_id", q.OwnerID); err != nil {
		return f, err
	}
	if f.MinimumPricePerNight, err = optionalInt("minimum_price_per_night", q.MinimumPricePerNight); err != nil {
		return f, err
	}
	if f.MaximumPricePerNight, err = optionalInt("maximum_price_per_night", q.MaximumPricePerNight); err != nil {
		return f, err
	}
	if f.MinimumRating, err = optionalFloat("minimum_rating", q.MinimumRating); err != nil {
		return f, err
	}
	return f, nil
}

// PageLimit parses ?limit=. Blank means 0, i.e. the default.
func (q SearchPropertiesQuery) PageLimit() (int, error) {
	return parseLimit(q.Limit)
}

func optionalInt(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be an integer")
	}
	return &v, nil
}

func optionalFloat(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, domain.NewValidationError(field, "must be a number")
	}
	return &v, nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("limit", "must be an integer")
	}
	return v, nil
}

// ListQuery binds an optional ?limit= parameter.
type ListQuery struct {
	Limit string `form:"limit"`
}

// PageLimit parses ?limit=. Blank means 0, i.e. the default.
func (q ListQuery) PageLimit() (int, error) {
	return parseLimit(q.Limit)
}

// CreatePropertyRequest is the payload for POST /v1/properties. The owner is
// the calling user, not a body field.
type CreatePropertyRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" binding:"required"`
	CoverPhotoURL     string `json:"cover_photo_url" binding:"required"`
	CostPerNight      int64  `json:"cost_per_night"`
	ParkingSpaces     int    `json:"parking_spaces"`
	NumberOfBathrooms int    `json:"number_of_bathrooms"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms"`
	Country           string `json:"country" binding:"required"`
	Street            string `json:"street" binding:"required"`
	City              string `json:"city" binding:"required"`
	Province          string `json:"province" binding:"required"`
	PostCode          string `json:"post_code" binding:"required"`
}

func (r CreatePropertyRequest) ToDomain(ownerID int64) domain.NewProperty {
	return domain.NewProperty{
		OwnerID:           ownerID,
		Title:             r.Title,
		Description:       r.Description,
		ThumbnailPhotoURL: r.ThumbnailPhotoURL,
		CoverPhotoURL:     r.CoverPhotoURL,
		CostPerNight:      r.CostPerNight,
		ParkingSpaces:     r.ParkingSpaces,
		NumberOfBathrooms: r.NumberOfBathrooms,
		NumberOfBedrooms:  r.NumberOfBedrooms,
		Country:           r.Country,
		Street:            r.Street,
		City:              r.City,
		Province:          r.Province,
		PostCode:          r.PostCode,
	}
}

type PropertyResponse struct {
	ID                int64    `json:"id"`
	OwnerID           int64    `json:"owner_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ThumbnailPhotoURL string   `json:"thumbnail_photo_url"`
	CoverPhotoURL     string   `json:"cover_photo_url"`
	CostPerNight      int64    `json:"cost_per_night"`
	ParkingSpaces     int      `json:"parking_spaces"`
	NumberOfBathrooms int      `json:"number_of_bathrooms"`
	NumberOfBedrooms  int      `json:"number_of_bedrooms"`
	Country           string   `json:"country"`
	Street            string   `json:"street"`
	City              string   `json:"city"`
	Province          string   `json:"province"`
	PostCode          string   `json:"post_code"`
	Active            bool     `json:"active"`
	AverageRating     *float64 `json:"average_rating"`
}

func PropertyFromDomain(p domain.Property, avg *float64) PropertyResponse {
	return PropertyResponse{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Description:       p.Description,
		ThumbnailPhotoURL: p.ThumbnailPhotoURL,
		CoverPhotoURL:     p.CoverPhotoURL,
		CostPerNight:      p.CostPerNight,
		ParkingSpaces:     p.ParkingSpaces,
		NumberOfBathrooms: p.NumberOfBathrooms,
		NumberOfBedrooms:  p.NumberOfBedrooms,
		Country:           p.Country,
		Street:            p.Street,
		City:              p.City,
		Province:          p.Province,
		PostCode:          p.PostCode,
		Active:            p.Active,
		AverageRating:     avg,
	}
}

func PropertiesFromDomain(ps []domain.PropertyWithRating) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, PropertyFromDomain(p.Property, p.AverageRating))
	}
	return out
}

// ReservationResponse is a completed stay with the reserved property.
type ReservationResponse struct {
	ID        int64            `json:"id"`
	GuestID   int64            `json:"guest_id"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Property  PropertyResponse `json:"property"`
}

func ReservationsFromDomain(rs []domain.ReservationWithProperty) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReservationResponse{
			ID:        r.ID,
			GuestID:   r.GuestID,
			StartDate: r.StartDate.Format(time.DateOnly),
			EndDate:   r.EndDate.Format(time.DateOnly),
			Property:  PropertyFromDomain(r.Property, r.AverageRating),
		})
	}
	return out
}
