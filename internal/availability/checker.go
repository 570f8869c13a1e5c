package availability

import (
	"context"
	"fmt"

	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// BookingStore answers conflict queries against stored bookings.
type BookingStore interface {
	// CountConflicts counts bookings on roomID overlapping rng, ignoring
	// excludeBookingID when it is not empty.
	CountConflicts(ctx context.Context, roomID string, rng DateRange, excludeBookingID string) (int, error)
	// BookedRoomIDs returns the rooms of hotelID with a booking overlapping rng.
	BookedRoomIDs(ctx context.Context, hotelID string, rng DateRange) ([]string, error)
}

// RoomStore lists the rooms of a hotel.
type RoomStore interface {
	ListByStatus(ctx context.Context, hotelID string, status room.Status) ([]*room.Room, error)
}

// Checker is the single place overlap decisions are made.
type Checker struct {
	bookings BookingStore
	rooms    RoomStore
}

func NewChecker(bookings BookingStore, rooms RoomStore) *Checker {
	return &Checker{bookings: bookings, rooms: rooms}
}

// ConflictCount returns the number of bookings on the room that overlap rng,
// not counting excludeBookingID.
func (c *Checker) ConflictCount(ctx context.Context, roomID string, rng DateRange, excludeBookingID string) (int, error) {
	if err := rng.Validate(); err != nil {
		return 0, err
	}
	n, err := c.bookings.CountConflicts(ctx, roomID, rng, excludeBookingID)
	if err != nil {
		return 0, fmt.Errorf("count conflicting bookings: %w", err)
	}
	return n, nil
}

// IsBooked reports whether any other booking holds the room during rng.
func (c *Checker) IsBooked(ctx context.Context, roomID string, rng DateRange, excludeBookingID string) (bool, error) {
	n, err := c.ConflictCount(ctx, roomID, rng, excludeBookingID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AvailableRooms returns the AVAILABLE rooms of the hotel that have no
// booking overlapping rng.
func (c *Checker) AvailableRooms(ctx context.Context, hotelID string, rng DateRange) ([]*room.Room, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	candidates, err := c.rooms.ListByStatus(ctx, hotelID, room.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	booked, err := c.bookings.BookedRoomIDs(ctx, hotelID, rng)
	if err != nil {
		return nil, fmt.Errorf("list booked rooms: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, id := range booked {
		taken[id] = struct{}{}
	}

	free := make([]*room.Room, 0, len(candidates))
	for _, r := range candidates {
		if r.Status != room.StatusAvailable {
			continue
		}
		if _, ok := taken[r.ID]; ok {
			continue
		}
		free = append(free, r)
	}
	return free, nil
}
