package hotel

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.New(apperror.KindNotFound, apperror.CodeHotelNotFound, "Hotel not found")
	ErrCapacityBelowRoomCount = apperror.New(apperror.KindInvalidState, apperror.CodeHotelCapacityBelowRoomCount, "Hotel capacity cannot be lower than the number of rooms already created")
)

// GeoLocation is the position of a hotel in decimal degrees.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

// Hotel is run by exactly one HOTEL staff user and holds at most RoomCount rooms.
type Hotel struct {
	ID          string
	Name        string
	RoomCount   int
	Location    GeoLocation
	StaffUserID string
	StaffEmail  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerEmail returns the staff user's email.
func (h *Hotel) OwnerEmail() string {
	return h.StaffEmail
}

// Filter defines options for listing hotels.
type Filter struct {
	Page int // zero-based
	Size int
}
