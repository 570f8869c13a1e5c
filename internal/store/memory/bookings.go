package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type bookingRepo struct{ s *Store }

func (s *Store) conflicts(roomID string, rng availability.DateRange, excludeID string) int {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID != roomID || (excludeID != "" && b.ID == excludeID) {
			continue
		}
		if availability.Overlaps(b.Range(), rng) {
			n++
		}
	}
	return n
}

// bookable checks the room still takes bookings. Callers hold s.mu.
func (s *Store) bookable(roomID string) error {
	rm, ok := s.rooms[roomID]
	if !ok {
		return room.ErrNotFound
	}
	if rm.Status == room.StatusUnavailable {
		return room.ErrUnavailable
	}
	return nil
}

func (r *bookingRepo) CountConflicts(_ context.Context, roomID string, rng availability.DateRange, excludeID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.conflicts(roomID, rng, excludeID), nil
}

func (r *bookingRepo) BookedRoomIDs(_ context.Context, hotelID string, rng availability.DateRange) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := map[string]bool{}
	var ids []string
	for _, b := range r.s.bookings {
		if b.HotelID == hotelID && availability.Overlaps(b.Range(), rng) && !seen[b.RoomID] {
			seen[b.RoomID] = true
			ids = append(ids, b.RoomID)
		}
	}
	return ids, nil
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.bookable(b.RoomID); err != nil {
		return err
	}
	if r.s.conflicts(b.RoomID, b.Range(), "") > 0 {
		return booking.ErrRoomAlreadyBooked
	}

	now := r.s.now().UTC()
	b.ID = newID()
	b.CreatedAt = now
	b.UpdatedAt = now
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bookings[b.ID]
	if !ok {
		return booking.ErrNotFound
	}
	if err := r.s.bookable(stored.RoomID); err != nil {
		return err
	}
	if r.s.conflicts(b.RoomID, b.Range(), b.ID) > 0 {
		return booking.ErrRoomAlreadyBooked
	}

	stored.GuestName = b.GuestName
	stored.Contact = b.Contact
	stored.CheckIn = b.CheckIn
	stored.CheckOut = b.CheckOut
	stored.UpdatedAt = r.s.now().UTC()
	b.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return r.s.bookingCopy(b), nil
}

func (s *Store) bookingCopy(b *booking.Booking) *booking.Booking {
	cp := *b
	cp.UserEmail = s.userEmail(b.UserID)
	return &cp
}

func (r *bookingRepo) List(_ context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*booking.Booking
	for _, b := range r.s.bookings {
		if filter.HotelID != "" && b.HotelID != filter.HotelID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		all = append(all, r.s.bookingCopy(b))
	}
	slices.SortFunc(all, func(a, b *booking.Booking) int {
		if c := a.CheckIn.Compare(b.CheckIn); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return page(all, filter.Page, filter.Size), len(all), nil
}

func (r *bookingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return booking.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}
