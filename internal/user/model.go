package user

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(apperror.KindNotFound, apperror.CodeUserNotFound, "User not found")
	ErrAlreadyExists = apperror.New(apperror.KindConflict, apperror.CodeUserAlreadyExists, "User with this email already exists")
)

// User represents a user in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string // Always lower case
	PasswordHash string
	Authority    auth.Authority
	CreatedAt    time.Time
}

// OwnerEmail identifies the user in ownership checks.
func (u *User) OwnerEmail() string {
	return u.Email
}

// Principal returns the request identity for u.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		UserID:    u.ID,
		Email:     u.Email,
		Authority: u.Authority,
	}
}
