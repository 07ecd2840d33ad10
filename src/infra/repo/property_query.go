package repo

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lightbnb/src/core/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const averageRating = "AVG(property_reviews.rating)"

var propertyColumns = []string{
	"properties.id",
	"properties.owner_id",
	"properties.title",
	"properties.description",
	"properties.thumbnail_photo_url",
	"properties.cover_photo_url",
	"properties.cost_per_night",
	"properties.parking_spaces",
	"properties.number_of_bathrooms",
	"properties.number_of_bedrooms",
	"properties.country",
	"properties.street",
	"properties.city",
	"properties.province",
	"properties.post_code",
	"properties.active",
}

// selectPropertiesWithRating left-joins reviews so unreviewed properties are
// returned with a NULL average.
func selectPropertiesWithRating() sq.SelectBuilder {
	cols := make([]string, 0, len(propertyColumns)+1)
	cols = append(cols, propertyColumns...)
	cols = append(cols, averageRating+"::float8 AS average_rating")

	return psql.Select(cols...).
		From("properties").
		LeftJoin("property_reviews ON property_reviews.property_id = properties.id").
		GroupBy("properties.id")
}

// buildSearchQuery ANDs together one predicate per supplied criterion. The
// rating threshold applies after aggregation. A zero limit means
// domain.DefaultListLimit; limits outside [1, domain.MaxListLimit] are rejected.
func buildSearchQuery(f domain.PropertyFilter, limit int) (string, []any, error) {
	limit, err := domain.NormalizeLimit(limit)
	if err != nil {
		return "", nil, err
	}
	b := selectPropertiesWithRating()

	if f.City != "" {
		b = b.Where(sq.ILike{"properties.city": "%" + escapeLike(f.City) + "%"})
	}
	if f.OwnerID != nil {
		b = b.Where(sq.Eq{"properties.owner_id": *f.OwnerID})
	}
	if f.MinimumPricePerNight != nil {
		b = b.Where(sq.GtOrEq{"properties.cost_per_night": *f.MinimumPricePerNight})
	}
	if f.MaximumPricePerNight != nil {
		b = b.Where(sq.LtOrEq{"properties.cost_per_night": *f.MaximumPricePerNight})
	}
	if f.MinimumRating != nil {
		b = b.Having(sq.GtOrEq{averageRating: *f.MinimumRating})
	}

	return b.OrderBy("properties.cost_per_night", "properties.id").
		Limit(uint64(limit)).
		ToSql()
}

func buildGetPropertyQuery(id int64) (string, []any, error) {
	return selectPropertiesWithRating().
		Where(sq.Eq{"properties.id": id}).
		ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanPropertyWithRating(row pgx.Row) (domain.PropertyWithRating, error) {
	var p domain.PropertyWithRating
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.ThumbnailPhotoURL, &p.CoverPhotoURL, &p.CostPerNight,
		&p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms,
		&p.Country, &p.Street, &p.City, &p.Province,
		&p.PostCode, &p.Active,
		&p.AverageRating,
	)
	return p, err
}
