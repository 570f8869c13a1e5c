// Package availability decides whether a room is free for a range of days.
//
// Ranges are closed on both ends: a booking from June 1 to June 5 occupies
// June 1 and June 5, so a booking starting June 5 conflicts with it while one
// starting June 6 does not.
package availability

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrCheckOutBeforeCheckIn = apperror.New(apperror.KindInvalidState, apperror.CodeCheckOutBeforeCheckIn, "Check-out date must be after check-in date")
	ErrCheckInInPast         = apperror.New(apperror.KindInvalidState, apperror.CodeCheckInInPast, "Check-in date cannot be in the past")
)

// DateRange is an inclusive [CheckIn, CheckOut] range of calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange truncates both ends to UTC calendar days.
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
}

// Day returns midnight UTC of the calendar day t falls on in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate checks that the range ends after it starts.
func (r DateRange) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrCheckOutBeforeCheckIn
	}
	return nil
}

// StartsBefore reports whether the range starts on a day before today.
func (r DateRange) StartsBefore(today time.Time) bool {
	return r.CheckIn.Before(Day(today))
}

// Overlaps reports whether a and b share at least one day. This is the same
// as either range having its check-in or check-out inside the other.
func Overlaps(a, b DateRange) bool {
	return !a.CheckIn.After(b.CheckOut) && !b.CheckIn.After(a.CheckOut)
}
