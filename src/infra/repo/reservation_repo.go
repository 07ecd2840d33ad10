package repo

import (
	"context"
	"log/slog"
	"time"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
	"lightbnb/src/infra/db"
)

var _ ports.ReservationRepository = (*ReservationRepository)(nil)

// ReservationRepository implements ports.ReservationRepository using pgx.
type ReservationRepository struct {
	postgres
}

func NewReservationRepository(pg *db.Postgres, log *slog.Logger, timeout time.Duration) *ReservationRepository {
	return &ReservationRepository{postgres: newPostgres(pg, log, "reservation_repo", timeout)}
}

// ListReservationsForGuest returns completed stays only: a reservation ending
// today is still in progress and is left out.
func (r *ReservationRepository) ListReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]domain.ReservationWithProperty, error) {
	const q = `
		SELECT reservations.id, reservations.guest_id, reservations.property_id,
		       reservations.start_date, reservations.end_date,
		       properties.id, properties.owner_id, properties.title, properties.description,
		       properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night,
		       properties.parking_spaces, properties.number_of_bathrooms, properties.number_of_bedrooms,
		       properties.country, properties.street, properties.city, properties.province,
		       properties.post_code, properties.active,
		       AVG(property_reviews.rating)::float8 AS average_rating
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		LEFT JOIN property_reviews ON property_reviews.property_id = properties.id
		WHERE reservations.guest_id = $1
		  AND reservations.end_date < now()::date
		GROUP BY properties.id, reservations.id
		ORDER BY reservations.start_date, reservations.id
		LIMIT $2
	`
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pg.Pool.Query(ctx, q, guestID, limit)
	if err != nil {
		return nil, r.classify(ctx, "list reservations for guest", err)
	}
	defer rows.Close()

	out := []domain.ReservationWithProperty{}
	for rows.Next() {
		var rp domain.ReservationWithProperty
		p := &rp.Property
		if err := rows.Scan(
			&rp.ID, &rp.GuestID, &rp.PropertyID, &rp.StartDate, &rp.EndDate,
			&p.ID, &p.OwnerID, &p.Title, &p.Description,
			&p.ThumbnailPhotoURL, &p.CoverPhotoURL, &p.CostPerNight,
			&p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms,
			&p.Country, &p.Street, &p.City, &p.Province,
			&p.PostCode, &p.Active,
			&rp.AverageRating,
		); err != nil {
			return nil, r.classify(ctx, "list reservations for guest", err)
		}
		out = append(out, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(ctx, "list reservations for guest", err)
	}
	return out, nil
}
