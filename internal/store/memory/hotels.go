package memory

import (
	"context"
	"slices"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

type hotelRepo struct{ s *Store }

func (r *hotelRepo) CreateWithStaff(_ context.Context, h *hotel.Hotel, staff *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.insertUser(staff); err != nil {
		return err
	}

	now := r.s.now().UTC()
	h.ID = newID()
	h.StaffUserID = staff.ID
	h.StaffEmail = staff.Email
	h.CreatedAt = now
	h.UpdatedAt = now

	cp := *h
	r.s.hotels[h.ID] = &cp
	r.s.hotelOrder = append(r.s.hotelOrder, h.ID)
	return nil
}

func (r *hotelRepo) GetByID(_ context.Context, id string) (*hotel.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.hotels[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	return r.s.hotelCopy(h), nil
}

func (s *Store) hotelCopy(h *hotel.Hotel) *hotel.Hotel {
	cp := *h
	cp.StaffEmail = s.userEmail(h.StaffUserID)
	return &cp
}

func (r *hotelRepo) List(_ context.Context, filter hotel.Filter) ([]*hotel.Hotel, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*hotel.Hotel, 0, len(r.s.hotelOrder))
	for _, id := range r.s.hotelOrder {
		all = append(all, r.s.hotelCopy(r.s.hotels[id]))
	}
	return page(all, filter.Page, filter.Size), len(all), nil
}

func (r *hotelRepo) Update(_ context.Context, h *hotel.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.hotels[h.ID]
	if !ok {
		return hotel.ErrNotFound
	}
	if h.RoomCount < len(r.s.roomsOf(h.ID)) {
		return hotel.ErrCapacityBelowRoomCount
	}

	stored.Name = h.Name
	stored.RoomCount = h.RoomCount
	stored.Location = h.Location
	stored.UpdatedAt = r.s.now().UTC()
	h.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *hotelRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.hotels[id]
	if !ok {
		return hotel.ErrNotFound
	}

	for bid, b := range r.s.bookings {
		if b.HotelID == id {
			delete(r.s.bookings, bid)
		}
	}
	for rid, rm := range r.s.rooms {
		if rm.HotelID == id {
			delete(r.s.rooms, rid)
		}
	}
	delete(r.s.hotels, id)
	r.s.hotelOrder = slices.DeleteFunc(r.s.hotelOrder, func(v string) bool { return v == id })

	if staff, ok := r.s.users[h.StaffUserID]; ok {
		staff.Authority = auth.AuthorityUser
	}
	return nil
}
