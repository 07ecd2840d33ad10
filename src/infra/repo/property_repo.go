package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
	"lightbnb/src/infra/db"
)

var _ ports.PropertyRepository = (*PropertyRepository)(nil)

// PropertyRepository implements ports.PropertyRepository using pgx.
type PropertyRepository struct {
	postgres
}

func NewPropertyRepository(pg *db.Postgres, log *slog.Logger, timeout time.Duration) *PropertyRepository {
	return &PropertyRepository{postgres: newPostgres(pg, log, "property_repo", timeout)}
}

func (r *PropertyRepository) SearchProperties(ctx context.Context, filter domain.PropertyFilter, limit int) ([]domain.PropertyWithRating, error) {
	q, args, err := buildSearchQuery(filter, limit)
	if err != nil {
		return nil, r.classify(ctx, "build property search", err)
	}
	r.log.DebugContext(ctx, "searching properties", "unfiltered", filter.IsEmpty(), "limit", limit)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pg.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, r.classify(ctx, "search properties", err)
	}
	defer rows.Close()

	out := []domain.PropertyWithRating{}
	for rows.Next() {
		p, err := scanPropertyWithRating(rows)
		if err != nil {
			return nil, r.classify(ctx, "search properties", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(ctx, "search properties", err)
	}
	return out, nil
}

func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int64) (*domain.PropertyWithRating, error) {
	q, args, err := buildGetPropertyQuery(id)
	if err != nil {
		return nil, r.classify(ctx, "build property lookup", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	p, err := scanPropertyWithRating(r.pg.Pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("property")
		}
		return nil, r.classify(ctx, "get property by id", err)
	}
	return &p, nil
}

// CreateProperty inserts the listing and returns the stored row. The owner is
// locked for the duration so it cannot disappear between the check and the insert.
func (r *PropertyRepository) CreateProperty(ctx context.Context, np domain.NewProperty) (*domain.Property, error) {
	const ownerQ = `SELECT id FROM users WHERE id = $1 FOR SHARE`
	const insertQ = `
		INSERT INTO properties (
			owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
			country, street, city, province, post_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, owner_id, title, description, thumbnail_photo_url, cover_photo_url,
		          cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
		          country, street, city, province, post_code, active
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var p domain.Property
	err := r.pg.WithTx(ctx, func(tx pgx.Tx) error {
		var ownerID int64
		if err := tx.QueryRow(ctx, ownerQ, np.OwnerID).Scan(&ownerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewValidationError("owner_id", "referenced user does not exist")
			}
			return err
		}

		return tx.QueryRow(ctx, insertQ,
			np.OwnerID, np.Title, np.Description, np.ThumbnailPhotoURL, np.CoverPhotoURL,
			np.CostPerNight, np.ParkingSpaces, np.NumberOfBathrooms, np.NumberOfBedrooms,
			np.Country, np.Street, np.City, np.Province, np.PostCode,
		).Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.ThumbnailPhotoURL, &p.CoverPhotoURL,
			&p.CostPerNight, &p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms,
			&p.Country, &p.Street, &p.City, &p.Province, &p.PostCode, &p.Active,
		)
	})
	if err != nil {
		return nil, r.classify(ctx, "create property", err)
	}
	return &p, nil
}
