package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	roomHttp "github.com/nekogravitycat/hotel-booking-backend/internal/room/http"
)

type Handler struct {
	checker      *availability.Checker
	hotelService hotel.Service
}

func NewHandler(checker *availability.Checker, hotelService hotel.Service) *Handler {
	return &Handler{checker: checker, hotelService: hotelService}
}

// AvailableRooms lists the rooms of a hotel that can be booked for the whole range.
func (h *Handler) AvailableRooms(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	var req AvailableRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.hotelService.GetByID(ctx, uri.HotelID); err != nil {
		response.Error(c, err)
		return
	}

	rooms, err := h.checker.AvailableRooms(ctx, uri.HotelID, req.dateRange())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, roomHttp.NewRoomResponses(rooms))
}
