package domain

import "time"

// User is a registered account. Password holds the bcrypt hash, never the plain text.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}

// NewUser is the input for creating a user. Password is plain text until the
// user service hashes it.
type NewUser struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

// Property is a rentable listing owned by a user. CostPerNight is in the
// smallest currency unit (cents).
type Property struct {
	ID                int64
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      int64
	ParkingSpaces     int
	NumberOfBathrooms int
	NumberOfBedrooms  int
	Country           string
	Street            string
	City              string
	Province          string
	PostCode          string
	Active            bool
}

// NewProperty is the input for creating a property.
type NewProperty struct {
	OwnerID           int64  `validate:"required,gt=0"`
	Title             string `validate:"required,max=255"`
	Description       string
	ThumbnailPhotoURL string `validate:"required,url,max=255"`
	CoverPhotoURL     string `validate:"required,url,max=255"`
	CostPerNight      int64  `validate:"gte=0"`
	ParkingSpaces     int    `validate:"gte=0"`
	NumberOfBathrooms int    `validate:"gte=0"`
	NumberOfBedrooms  int    `validate:"gte=0"`
	Country           string `validate:"required,max=255"`
	Street            string `validate:"required,max=255"`
	City              string `validate:"required,max=255"`
	Province          string `validate:"required,max=255"`
	PostCode          string `validate:"required,max=255"`
}

// PropertyWithRating is a property plus the average of its review ratings.
// AverageRating is nil when the property has no reviews.
type PropertyWithRating struct {
	Property
	AverageRating *float64
}

// Reservation books a property for a guest over [StartDate, EndDate).
type Reservation struct {
	ID         int64
	GuestID    int64
	PropertyID int64
	StartDate  time.Time
	EndDate    time.Time
}

// ReservationWithProperty is a past reservation together with the reserved
// property and that property's average rating.
type ReservationWithProperty struct {
	Reservation
	Property      Property
	AverageRating *float64
}

// PropertyReview is a guest's rating of a stay. Only used in aggregate.
type PropertyReview struct {
	ID            int64
	GuestID       int64
	PropertyID    int64
	ReservationID int64
	Rating        int
	Message       string
}
