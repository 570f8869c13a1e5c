package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type RoomHandler struct {
	service room.Service
}

func NewHandler(service room.Service) *RoomHandler {
	return &RoomHandler{service: service}
}

// List retrieves a page of the hotel's rooms.
func (h *RoomHandler) List(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	params := req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), uri.HotelID, room.Filter{Page: params.Page, Size: params.Size})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewRoomResponses(rooms), params.Page, params.Size, total))
}

// Create adds a room to the hotel while it is below capacity.
// Access Control: ADMIN or the hotel's staff.
func (h *RoomHandler) Create(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), uri.HotelID, req.toAttributes())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.EntityResponse{ID: r.ID, Message: "Room created successfully"})
}

// Get retrieves a room of the hotel.
func (h *RoomHandler) Get(c *gin.Context) {
	var uri request.RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	r, err := h.service.Get(c.Request.Context(), uri.HotelID, uri.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

// Update replaces the attributes of a room.
// Access Control: ADMIN or the hotel's staff.
func (h *RoomHandler) Update(c *gin.Context) {
	var uri request.RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), uri.HotelID, uri.RoomID, req.toAttributes())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: r.ID, Message: "Room updated successfully"})
}

// Delete removes a room together with its bookings.
// Access Control: ADMIN or the hotel's staff.
func (h *RoomHandler) Delete(c *gin.Context) {
	var uri request.RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.HotelID, uri.RoomID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: uri.RoomID, Message: "Room deleted successfully"})
}
