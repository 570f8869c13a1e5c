package room

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(apperror.KindNotFound, apperror.CodeRoomNotFound, "Room not found")
	ErrNotFoundInHotel       = apperror.New(apperror.KindNotFound, apperror.CodeRoomNotFoundInHotel, "Room does not belong to this hotel")
	ErrUnavailable           = apperror.New(apperror.KindInvalidState, apperror.CodeRoomUnavailable, "Room is unavailable")
	ErrAlreadyExists         = apperror.New(apperror.KindConflict, apperror.CodeRoomAlreadyExists, "Room with this number already exists in the hotel")
	ErrHotelMaximumRoomCount = apperror.New(apperror.KindInvalidState, apperror.CodeHotelMaximumRoomCount, "Hotel has reached its maximum room count")
)

type Type string

const (
	TypeSingle Type = "SINGLE"
	TypeDouble Type = "DOUBLE"
	TypeTwin   Type = "TWIN"
	TypeTriple Type = "TRIPLE"
	TypeSuite  Type = "SUITE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeTwin, TypeTriple, TypeSuite:
		return true
	}
	return false
}

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// Room is a bookable unit. Number is unique within its hotel.
type Room struct {
	ID        string
	HotelID   string
	Number    int
	Type      Type
	Price     float64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines options for listing the rooms of a hotel.
type Filter struct {
	Page int // zero-based
	Size int
}
