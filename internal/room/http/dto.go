package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
}

// RoomRequest is the payload for creating or replacing a room.
type RoomRequest struct {
	RoomNumber int      `json:"roomNumber" binding:"required,min=1"`
	Type       string   `json:"type" binding:"required,oneof=SINGLE DOUBLE TWIN TRIPLE SUITE"`
	Price      *float64 `json:"price" binding:"required,min=0"`
	Status     string   `json:"status" binding:"required,oneof=AVAILABLE UNAVAILABLE"`
}

func (r *RoomRequest) toAttributes() room.Attributes {
	return room.Attributes{
		Number: r.RoomNumber,
		Type:   room.Type(r.Type),
		Price:  *r.Price,
		Status: room.Status(r.Status),
	}
}

type RoomResponse struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotelId"`
	RoomNumber int     `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		HotelID:    r.HotelID,
		RoomNumber: r.Number,
		Type:       string(r.Type),
		Price:      r.Price,
		Status:     string(r.Status),
	}
}

// NewRoomResponses maps a slice of rooms.
func NewRoomResponses(rooms []*room.Room) []RoomResponse {
	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	return items
}
