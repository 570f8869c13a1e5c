package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// ListHotelsRequest defines query parameters for listing hotels.
type ListHotelsRequest struct {
	request.ListParams
}

type GeoLocationDTO struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

func (g *GeoLocationDTO) toModel() hotel.GeoLocation {
	return hotel.GeoLocation{Latitude: *g.Latitude, Longitude: *g.Longitude}
}

// StaffDTO is the account created for the hotel's staff.
type StaffDTO struct {
	Name     string `json:"name" binding:"required,min=3,max=25"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateHotelRequest is the payload for POST /hotels.
type CreateHotelRequest struct {
	Name      string          `json:"name" binding:"required,min=3,max=25"`
	RoomCount int             `json:"roomCount" binding:"required,min=1"`
	Location  *GeoLocationDTO `json:"location" binding:"required"`
	User      *StaffDTO       `json:"user" binding:"required"`
}

// UpdateHotelRequest is the payload for PUT /hotels/:hotelId.
type UpdateHotelRequest struct {
	Name      string          `json:"name" binding:"required,min=3,max=25"`
	RoomCount int             `json:"roomCount" binding:"required,min=1"`
	Location  *GeoLocationDTO `json:"location" binding:"required"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HotelResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	RoomCount int              `json:"roomCount"`
	Location  LocationResponse `json:"location"`
}

func NewHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		RoomCount: h.RoomCount,
		Location: LocationResponse{
			Latitude:  h.Location.Latitude,
			Longitude: h.Location.Longitude,
		},
	}
}
