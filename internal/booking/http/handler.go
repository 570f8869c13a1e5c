package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// principal returns the caller set by auth.AuthRequired, aborting when absent.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		response.Error(c, auth.ErrMissingToken)
	}
	return p, ok
}

func writePage(c *gin.Context, bookings []*booking.Booking, params request.ListParams, total int) {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.Size, total))
}

// ListByHotel lists the bookings of a hotel. USERs only see their own.
func (h *Handler) ListByHotel(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}
	params := req.Normalize()

	bookings, total, err := h.service.ListByHotel(c.Request.Context(), p, uri.HotelID,
		booking.Filter{Page: params.Page, Size: params.Size})
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, bookings, params, total)
}

// ListByRoom lists the bookings of a room. USERs only see their own.
func (h *Handler) ListByRoom(c *gin.Context) {
	var uri request.RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}
	params := req.Normalize()

	bookings, total, err := h.service.ListByRoom(c.Request.Context(), p, uri.HotelID, uri.RoomID,
		booking.Filter{Page: params.Page, Size: params.Size})
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, bookings, params, total)
}

// Create books the room for the caller.
func (h *Handler) Create(c *gin.Context) {
	var uri request.RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), p, uri.HotelID, uri.RoomID, req.toDetails())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.EntityResponse{ID: b.ID, Message: "Room Booked successfully"})
}

// Get returns a booking to its owner, an ADMIN or the hotel's staff.
func (h *Handler) Get(c *gin.Context) {
	var uri request.BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), p, uri.HotelID, uri.RoomID, uri.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Update replaces the details and dates of a booking.
// Access Control: booking owner or ADMIN.
func (h *Handler) Update(c *gin.Context) {
	var uri request.BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	b, err := h.service.Update(c.Request.Context(), p, uri.HotelID, uri.RoomID, uri.BookingID, req.toDetails())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: b.ID, Message: "Booking updated successfully"})
}

// Cancel deletes a booking.
// Access Control: booking owner or ADMIN.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), p, uri.HotelID, uri.RoomID, uri.BookingID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: uri.BookingID, Message: "Booking cancelled successfully"})
}
