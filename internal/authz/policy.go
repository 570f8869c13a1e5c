// Package authz holds the role and ownership rules shared by routing
// middleware and the services.
package authz

import (
	"strings"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
)

// Owned is implemented by resources that belong to a single user, identified by email.
type Owned interface {
	OwnerEmail() string
}

// IsAdmin reports whether p is a platform administrator.
func IsAdmin(p auth.Principal) bool {
	return p.Authority == auth.AuthorityAdmin
}

// OwnsHotel reports whether p may manage the hotel: admins always,
// otherwise only the hotel's staff user.
func OwnsHotel(p auth.Principal, hotel Owned) bool {
	return IsAdmin(p) || sameEmail(p.Email, hotel)
}

// OwnsBooking reports whether p may mutate the booking: admins always,
// otherwise only the user who made it.
func OwnsBooking(p auth.Principal, booking Owned) bool {
	return IsAdmin(p) || sameEmail(p.Email, booking)
}

// CanViewBooking extends OwnsBooking with read access for the staff of the
// hotel the booking belongs to.
func CanViewBooking(p auth.Principal, booking, hotel Owned) bool {
	if OwnsBooking(p, booking) {
		return true
	}
	return p.Authority == auth.AuthorityHotel && hotel != nil && sameEmail(p.Email, hotel)
}

func sameEmail(email string, o Owned) bool {
	if o == nil || email == "" {
		return false
	}
	return strings.EqualFold(email, o.OwnerEmail())
}
