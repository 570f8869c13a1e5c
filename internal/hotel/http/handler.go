package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

type HotelHandler struct {
	service hotel.Service
}

func NewHandler(service hotel.Service) *HotelHandler {
	return &HotelHandler{service: service}
}

// List retrieves a page of hotels.
func (h *HotelHandler) List(c *gin.Context) {
	var req ListHotelsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	params := req.Normalize()

	hotels, total, err := h.service.List(c.Request.Context(), hotel.Filter{Page: params.Page, Size: params.Size})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HotelResponse, len(hotels))
	for i, ho := range hotels {
		items[i] = NewHotelResponse(ho)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.Size, total))
}

// Create adds a hotel and its staff account.
// Access Control: ADMIN only.
func (h *HotelHandler) Create(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ho, err := h.service.Create(c.Request.Context(), hotel.CreateRequest{
		Name:      req.Name,
		RoomCount: req.RoomCount,
		Location:  req.Location.toModel(),
		Staff: user.SignUpRequest{
			Name:     req.User.Name,
			Email:    req.User.Email,
			Password: req.User.Password,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.EntityResponse{ID: ho.ID, Message: "Hotel created successfully"})
}

// Get retrieves a hotel by its ID.
func (h *HotelHandler) Get(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	ho, err := h.service.GetByID(c.Request.Context(), uri.HotelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewHotelResponse(ho))
}

// Update replaces the name, capacity and location of a hotel.
// Access Control: ADMIN or the hotel's staff.
func (h *HotelHandler) Update(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ho, err := h.service.Update(c.Request.Context(), uri.HotelID, hotel.UpdateRequest{
		Name:      req.Name,
		RoomCount: req.RoomCount,
		Location:  req.Location.toModel(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: ho.ID, Message: "Hotel updated successfully"})
}

// Delete removes a hotel with all of its rooms and bookings.
// Access Control: ADMIN only.
func (h *HotelHandler) Delete(c *gin.Context) {
	var uri request.HotelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.URIError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.HotelID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.EntityResponse{ID: uri.HotelID, Message: "Hotel deleted successfully"})
}
