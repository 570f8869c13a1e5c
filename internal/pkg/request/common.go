package request

import "math"

const (
	DefaultPage = 0
	DefaultSize = 10
	MaxSize     = 100

	// MaxPage keeps MaxPage*MaxSize within int64. The page binding tag repeats it.
	MaxPage = math.MaxInt64 / MaxSize
)

// ListParams carries zero-based pagination query parameters.
type ListParams struct {
	Page int `form:"page" binding:"omitempty,min=0,max=92233720368547758"`
	Size int `form:"size" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults for missing or out-of-range values.
func (p ListParams) Normalize() ListParams {
	if p.Page < 0 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the number of rows to skip for a zero-based page.
// Non-positive inputs give 0 and a product past int64 saturates at
// math.MaxInt64, which still fits a Postgres bigint OFFSET.
func Offset(page, size int) uint64 {
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt64/size {
		return math.MaxInt64
	}
	return uint64(page) * uint64(size)
}

// HotelURI binds the hotel id path parameter.
type HotelURI struct {
	HotelID string `uri:"hotelId" binding:"required,uuid"`
}

// RoomURI binds the hotel and room id path parameters.
type RoomURI struct {
	HotelID string `uri:"hotelId" binding:"required,uuid"`
	RoomID  string `uri:"roomId" binding:"required,uuid"`
}

// BookingURI binds the hotel, room and booking id path parameters.
type BookingURI struct {
	HotelID   string `uri:"hotelId" binding:"required,uuid"`
	RoomID    string `uri:"roomId" binding:"required,uuid"`
	BookingID string `uri:"bookingId" binding:"required,uuid"`
}
