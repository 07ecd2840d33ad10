package domain

// DefaultListLimit is used when a caller does not ask for a specific page size.
const DefaultListLimit = 10

// MaxListLimit caps the page size of every list operation.
const MaxListLimit = 100

// MaxRating is the highest rating a review can carry.
const MaxRating = 5

// PropertyFilter holds the optional property search criteria. A nil or empty
// field means "no constraint". All supplied criteria must hold.
type PropertyFilter struct {
	// City matches any property whose city contains this text, ignoring case.
	City string

	OwnerID *int64

	// MinimumPricePerNight and MaximumPricePerNight are inclusive bounds on
	// cost_per_night, in the same unit as Property.CostPerNight.
	MinimumPricePerNight *int64
	MaximumPricePerNight *int64

	// MinimumRating is applied to the average review rating.
	MinimumRating *float64
}

// IsEmpty reports whether no criterion is set.
func (f PropertyFilter) IsEmpty() bool {
	return f.City == "" && f.OwnerID == nil && f.MinimumPricePerNight == nil &&
		f.MaximumPricePerNight == nil && f.MinimumRating == nil
}

// Validate checks the criteria that cannot be expressed per field.
func (f PropertyFilter) Validate() error {
	if f.OwnerID != nil && *f.OwnerID <= 0 {
		return NewValidationError("owner_id", "must be positive")
	}
	if f.MinimumPricePerNight != nil && *f.MinimumPricePerNight < 0 {
		return NewValidationError("minimum_price_per_night", "must not be negative")
	}
	if f.MaximumPricePerNight != nil && *f.MaximumPricePerNight < 0 {
		return NewValidationError("maximum_price_per_night", "must not be negative")
	}
	if f.MinimumPricePerNight != nil && f.MaximumPricePerNight != nil &&
		*f.MinimumPricePerNight > *f.MaximumPricePerNight {
		return NewValidationError("minimum_price_per_night", "must not exceed maximum_price_per_night")
	}
	if f.MinimumRating != nil && (*f.MinimumRating < 0 || *f.MinimumRating > MaxRating) {
		return NewValidationError("minimum_rating", "must be between 0 and 5")
	}
	return nil
}

// NormalizeLimit maps 0 to DefaultListLimit and rejects values outside
// [1, MaxListLimit].
func NormalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultListLimit, nil
	}
	if limit < 0 || limit > MaxListLimit {
		return 0, NewValidationError("limit", "must be between 1 and 100")
	}
	return limit, nil
}
