package memory

import (
	"context"

	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type roomRepo struct{ s *Store }

func (r *roomRepo) Create(_ context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.hotels[rm.HotelID]
	if !ok {
		return hotel.ErrNotFound
	}
	existing := r.s.roomsOf(rm.HotelID)
	if len(existing) >= h.RoomCount {
		return room.ErrHotelMaximumRoomCount
	}
	for _, other := range existing {
		if other.Number == rm.Number {
			return room.ErrAlreadyExists
		}
	}

	now := r.s.now().UTC()
	rm.ID = newID()
	rm.CreatedAt = now
	rm.UpdatedAt = now
	cp := *rm
	r.s.rooms[rm.ID] = &cp
	return nil
}

func (r *roomRepo) GetByID(_ context.Context, id string) (*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	cp := *rm
	return &cp, nil
}

func (r *roomRepo) List(_ context.Context, hotelID string, filter room.Filter) ([]*room.Room, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := copyRooms(r.s.roomsOf(hotelID))
	return page(all, filter.Page, filter.Size), len(all), nil
}

func (r *roomRepo) ListByStatus(_ context.Context, hotelID string, status room.Status) ([]*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*room.Room
	for _, rm := range copyRooms(r.s.roomsOf(hotelID)) {
		if rm.Status == status {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (r *roomRepo) Update(_ context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.rooms[rm.ID]
	if !ok {
		return room.ErrNotFound
	}
	for _, other := range r.s.roomsOf(stored.HotelID) {
		if other.ID != rm.ID && other.Number == rm.Number {
			return room.ErrAlreadyExists
		}
	}

	stored.Number = rm.Number
	stored.Type = rm.Type
	stored.Price = rm.Price
	stored.Status = rm.Status
	stored.UpdatedAt = r.s.now().UTC()
	rm.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *roomRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return room.ErrNotFound
	}
	for bid, b := range r.s.bookings {
		if b.RoomID == id {
			delete(r.s.bookings, bid)
		}
	}
	delete(r.s.rooms, id)
	return nil
}

func copyRooms(rooms []*room.Room) []*room.Room {
	out := make([]*room.Room, len(rooms))
	for i, rm := range rooms {
		cp := *rm
		out[i] = &cp
	}
	return out
}
