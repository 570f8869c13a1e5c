// Package memory is an in-process Entity Store. A single mutex serializes
// every read and write, which gives the same all-or-nothing behavior as the
// Postgres transactions: conflict checks and the writes they guard cannot
// interleave.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

type Store struct {
	mu sync.Mutex

	users    map[string]*user.User
	hotels   map[string]*hotel.Hotel
	rooms    map[string]*room.Room
	bookings map[string]*booking.Booking

	// Insertion order, used for stable listings.
	hotelOrder []string

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[string]*user.User),
		hotels:   make(map[string]*hotel.Hotel),
		rooms:    make(map[string]*room.Room),
		bookings: make(map[string]*booking.Booking),
		now:      time.Now,
	}
}

func (s *Store) Users() user.Repository       { return &userRepo{s} }
func (s *Store) Hotels() hotel.Repository     { return &hotelRepo{s} }
func (s *Store) Rooms() room.Repository       { return &roomRepo{s} }
func (s *Store) Bookings() booking.Repository { return &bookingRepo{s} }

func newID() string {
	return uuid.NewString()
}

// page slices items for a zero-based page. A non-positive size returns everything.
func page[T any](items []T, p, size int) []T {
	if size <= 0 {
		return items
	}
	offset := request.Offset(p, size)
	if offset >= uint64(len(items)) {
		return nil
	}
	start := int(offset)
	end := min(start+size, len(items))
	return items[start:end]
}

func (s *Store) userEmail(id string) string {
	if u, ok := s.users[id]; ok {
		return u.Email
	}
	return ""
}

func (s *Store) roomsOf(hotelID string) []*room.Room {
	var out []*room.Room
	for _, r := range s.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b *room.Room) int { return a.Number - b.Number })
	return out
}
