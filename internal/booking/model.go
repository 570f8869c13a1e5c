package booking

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, apperror.CodeBookingNotFound, "Booking not found")
	ErrRoomAlreadyBooked = apperror.New(apperror.KindConflict, apperror.CodeRoomAlreadyBooked, "Room is already booked for the selected dates")

	ErrCheckOutBeforeCheckIn = availability.ErrCheckOutBeforeCheckIn
	ErrCheckInInPast         = availability.ErrCheckInInPast
)

const (
	MinGuestNameLength = 3
	MaxGuestNameLength = 25
	MinPhone           = 1_000_000_000
	MaxPhone           = 9_999_999_999
)

// ContactInfo is how the hotel reaches the guest.
type ContactInfo struct {
	Address string
	Phone   int64 // 10 digits
}

// Booking reserves a room for an inclusive range of days.
type Booking struct {
	ID        string
	HotelID   string
	RoomID    string
	UserID    string
	UserEmail string
	GuestName string
	Contact   ContactInfo
	CheckIn   time.Time
	CheckOut  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerEmail returns the email of the user who made the booking.
func (b *Booking) OwnerEmail() string {
	return b.UserEmail
}

// Range returns the days the booking occupies.
func (b *Booking) Range() availability.DateRange {
	return availability.NewDateRange(b.CheckIn, b.CheckOut)
}

// Filter selects bookings. Empty fields are ignored.
type Filter struct {
	HotelID string
	RoomID  string
	UserID  string
	Page    int // zero-based
	Size    int
}
