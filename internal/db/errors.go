package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Violation describes a constraint the store refused to break.
type Violation struct {
	Code       string // SQLSTATE, see pgerrcode
	Constraint string // Constraint name as declared in schema.sql
}

// AsViolation extracts integrity constraint details from a pgx error.
func AsViolation(err error) (Violation, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Violation{}, false
	}
	if !pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return Violation{}, false
	}
	return Violation{Code: pgErr.Code, Constraint: pgErr.ConstraintName}, true
}

// IsUniqueViolation reports whether err breaks the named unique constraint.
// An empty name matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == pgerrcode.UniqueViolation && (constraint == "" || v.Constraint == constraint)
}

// IsExclusionViolation reports whether err breaks the named exclusion constraint.
func IsExclusionViolation(err error, constraint string) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == pgerrcode.ExclusionViolation && (constraint == "" || v.Constraint == constraint)
}

// Constraint names referenced by repositories.
const (
	ConstraintUserEmail        = "users_email_key"
	ConstraintHotelStaffUser   = "hotels_staff_user_id_key"
	ConstraintRoomNumber       = "rooms_hotel_id_room_number_key"
	ConstraintBookingNoOverlap = "bookings_room_no_overlap"
)
