package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// AvailableRoomsRequest defines the query of GET /hotels/:hotelId/rooms/available.
type AvailableRoomsRequest struct {
	CheckIn  *request.Date `form:"checkIn" binding:"required"`
	CheckOut *request.Date `form:"checkOut" binding:"required"`
}

func (r *AvailableRoomsRequest) dateRange() availability.DateRange {
	return availability.NewDateRange(r.CheckIn.Time, r.CheckOut.Time)
}
