package hotel_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/store/memory"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

type env struct {
	store  *memory.Store
	users  user.Service
	hotels hotel.Service
	rooms  room.Service
}

func setup() env {
	log := logging.Discard()
	store := memory.New()
	users := user.NewService(store.Users(), auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost), log)
	hotels := hotel.NewService(store.Hotels(), users, log)
	return env{
		store:  store,
		users:  users,
		hotels: hotels,
		rooms:  room.NewService(store.Rooms(), hotels, log),
	}
}

func createRequest(name, staffEmail string, capacity int) hotel.CreateRequest {
	return hotel.CreateRequest{
		Name:      name,
		RoomCount: capacity,
		Location:  hotel.GeoLocation{Latitude: 48.85, Longitude: 2.35},
		Staff:     user.SignUpRequest{Name: "Front Desk", Email: staffEmail, Password: "password123"},
	}
}

func TestCreate_ProvisionsStaffAccount(t *testing.T) {
	e := setup()
	ctx := context.Background()

	h, err := e.hotels.Create(ctx, createRequest("  Left Bank  ", "Desk@LeftBank.com", 3))
	require.NoError(t, err)
	assert.Equal(t, "Left Bank", h.Name)
	assert.Equal(t, "desk@leftbank.com", h.StaffEmail)

	staff, err := e.users.Login(ctx, "desk@leftbank.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, auth.AuthorityHotel, staff.Authority)
	assert.Equal(t, staff.ID, h.StaffUserID)
}

func TestCreate_Rejections(t *testing.T) {
	e := setup()
	ctx := context.Background()

	_, err := e.hotels.Create(ctx, createRequest("Left Bank", "desk@leftbank.com", 3))
	require.NoError(t, err)

	t.Run("staff email taken", func(t *testing.T) {
		_, err := e.hotels.Create(ctx, createRequest("Right Bank", "desk@leftbank.com", 3))
		assert.ErrorIs(t, err, user.ErrAlreadyExists)

		_, total, err := e.hotels.List(ctx, hotel.Filter{Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total, "no hotel is stored when the staff account fails")
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := createRequest("X", "desk@other.com", 0)
		req.Location = hotel.GeoLocation{Latitude: 91, Longitude: -181}

		_, err := e.hotels.Create(ctx, req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "name")
		assert.Contains(t, appErr.Fields, "roomCount")
		assert.Contains(t, appErr.Fields, "location.latitude")
		assert.Contains(t, appErr.Fields, "location.longitude")
	})
}

func TestUpdate_CapacityCannotDropBelowRooms(t *testing.T) {
	e := setup()
	ctx := context.Background()

	h, err := e.hotels.Create(ctx, createRequest("Left Bank", "desk@leftbank.com", 3))
	require.NoError(t, err)
	for _, n := range []int{1, 2} {
		_, err := e.rooms.Create(ctx, h.ID, room.Attributes{Number: n, Type: room.TypeTwin, Price: 90, Status: room.StatusAvailable})
		require.NoError(t, err)
	}

	_, err = e.hotels.Update(ctx, h.ID, hotel.UpdateRequest{Name: "Left Bank", RoomCount: 1})
	assert.ErrorIs(t, err, hotel.ErrCapacityBelowRoomCount)

	updated, err := e.hotels.Update(ctx, h.ID, hotel.UpdateRequest{Name: "Left Bank Suites", RoomCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Left Bank Suites", updated.Name)
	assert.Equal(t, 2, updated.RoomCount)

	_, err = e.hotels.Update(ctx, "00000000-0000-0000-0000-000000000000", hotel.UpdateRequest{Name: "Nowhere", RoomCount: 2})
	assert.ErrorIs(t, err, hotel.ErrNotFound)
}

func TestDelete_Cascades(t *testing.T) {
	e := setup()
	ctx := context.Background()

	h, err := e.hotels.Create(ctx, createRequest("Left Bank", "desk@leftbank.com", 3))
	require.NoError(t, err)
	r, err := e.rooms.Create(ctx, h.ID, room.Attributes{Number: 1, Type: room.TypeTwin, Price: 90, Status: room.StatusAvailable})
	require.NoError(t, err)

	guest, err := e.users.SignUp(ctx, user.SignUpRequest{Name: "Guest", Email: "guest@mail.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, e.store.Bookings().Create(ctx, &booking.Booking{
		HotelID:   h.ID,
		RoomID:    r.ID,
		UserID:    guest.ID,
		GuestName: "Guest",
		Contact:   booking.ContactInfo{Address: "1 Rue", Phone: 1234567890},
		CheckIn:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, e.hotels.Delete(ctx, h.ID))

	_, err = e.hotels.GetByID(ctx, h.ID)
	assert.ErrorIs(t, err, hotel.ErrNotFound)
	_, err = e.store.Rooms().GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, room.ErrNotFound)
	_, total, err := e.store.Bookings().List(ctx, booking.Filter{HotelID: h.ID})
	require.NoError(t, err)
	assert.Zero(t, total)

	staff, err := e.users.GetByID(ctx, h.StaffUserID)
	require.NoError(t, err)
	assert.Equal(t, auth.AuthorityUser, staff.Authority, "staff account is demoted")

	assert.ErrorIs(t, e.hotels.Delete(ctx, h.ID), hotel.ErrNotFound)
}

func TestList_Pagination(t *testing.T) {
	e := setup()
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := e.hotels.Create(ctx, createRequest(name, name+"@desk.com", 1))
		require.NoError(t, err)
	}

	hotels, total, err := e.hotels.List(ctx, hotel.Filter{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Charlie", hotels[0].Name)

	hotels, total, err = e.hotels.List(ctx, hotel.Filter{Page: 5, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, hotels)

	// page*size past int64 must read as an empty page, not a negative slice index.
	hotels, total, err = e.hotels.List(ctx, hotel.Filter{Page: math.MaxInt64 / 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, hotels)
}
