package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
}

type ContactInfoDTO struct {
	Address string `json:"address" binding:"required"`
	Phone   int64  `json:"phone" binding:"required,min=1000000000,max=9999999999"`
}

// BookingRequest is the payload for creating or replacing a booking.
type BookingRequest struct {
	GuestName   string          `json:"guestName" binding:"required,min=3,max=25"`
	ContactInfo *ContactInfoDTO `json:"contactInfo" binding:"required"`
	CheckIn     *request.Date   `json:"checkIn" binding:"required"`
	CheckOut    *request.Date   `json:"checkOut" binding:"required"`
}

func (r *BookingRequest) toDetails() booking.Details {
	return booking.Details{
		GuestName: r.GuestName,
		Contact: booking.ContactInfo{
			Address: r.ContactInfo.Address,
			Phone:   r.ContactInfo.Phone,
		},
		CheckIn:  r.CheckIn.Time,
		CheckOut: r.CheckOut.Time,
	}
}

type ContactInfoResponse struct {
	Address string `json:"address"`
	Phone   int64  `json:"phone"`
}

type BookingResponse struct {
	ID          string              `json:"id"`
	HotelID     string              `json:"hotelId"`
	RoomID      string              `json:"roomId"`
	GuestName   string              `json:"guestName"`
	ContactInfo ContactInfoResponse `json:"contactInfo"`
	CheckIn     request.Date        `json:"checkIn"`
	CheckOut    request.Date        `json:"checkOut"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		HotelID:   b.HotelID,
		RoomID:    b.RoomID,
		GuestName: b.GuestName,
		ContactInfo: ContactInfoResponse{
			Address: b.Contact.Address,
			Phone:   b.Contact.Phone,
		},
		CheckIn:  request.NewDate(b.CheckIn),
		CheckOut: request.NewDate(b.CheckOut),
	}
}
