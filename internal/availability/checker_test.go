package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/store/memory"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	checker *availability.Checker
	hotelID string
	rooms   map[int]string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	h := &hotel.Hotel{Name: "Seaside", RoomCount: 3}
	staff := &user.User{Name: "Staff", Email: "staff@seaside.com", Authority: auth.AuthorityHotel}
	require.NoError(t, store.Hotels().CreateWithStaff(ctx, h, staff))

	rooms := map[int]string{}
	for number, status := range map[int]room.Status{
		101: room.StatusAvailable,
		102: room.StatusAvailable,
		103: room.StatusUnavailable,
	} {
		r := &room.Room{HotelID: h.ID, Number: number, Type: room.TypeDouble, Price: 100, Status: status}
		require.NoError(t, store.Rooms().Create(ctx, r))
		rooms[number] = r.ID
	}

	guest := &user.User{Name: "Guest", Email: "guest@mail.com", Authority: auth.AuthorityUser}
	require.NoError(t, store.Users().Create(ctx, guest))
	require.NoError(t, store.Bookings().Create(ctx, &booking.Booking{
		HotelID:   h.ID,
		RoomID:    rooms[101],
		UserID:    guest.ID,
		GuestName: "Guest",
		Contact:   booking.ContactInfo{Address: "1 Main St", Phone: 9876543210},
		CheckIn:   date("2025-06-01"),
		CheckOut:  date("2025-06-05"),
	}))

	return fixture{
		checker: availability.NewChecker(store.Bookings(), store.Rooms()),
		hotelID: h.ID,
		rooms:   rooms,
	}
}

func roomIDs(rooms []*room.Room) []string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}

func TestChecker_AvailableRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("booked and unavailable rooms are excluded", func(t *testing.T) {
		free, err := f.checker.AvailableRooms(ctx, f.hotelID,
			availability.NewDateRange(date("2025-06-03"), date("2025-06-07")))
		require.NoError(t, err)
		assert.Equal(t, []string{f.rooms[102]}, roomIDs(free))
	})

	t.Run("room is free again after a one day gap", func(t *testing.T) {
		free, err := f.checker.AvailableRooms(ctx, f.hotelID,
			availability.NewDateRange(date("2025-06-06"), date("2025-06-08")))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{f.rooms[101], f.rooms[102]}, roomIDs(free))
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := f.checker.AvailableRooms(ctx, f.hotelID,
			availability.NewDateRange(date("2025-06-06"), date("2025-06-06")))
		assert.ErrorIs(t, err, availability.ErrCheckOutBeforeCheckIn)
	})
}

func TestChecker_IsBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booked, err := f.checker.IsBooked(ctx, f.rooms[101],
		availability.NewDateRange(date("2025-06-05"), date("2025-06-06")), "")
	require.NoError(t, err)
	assert.True(t, booked, "check-in on an existing check-out day conflicts")

	booked, err = f.checker.IsBooked(ctx, f.rooms[101],
		availability.NewDateRange(date("2025-06-06"), date("2025-06-08")), "")
	require.NoError(t, err)
	assert.False(t, booked)

	booked, err = f.checker.IsBooked(ctx, f.rooms[102],
		availability.NewDateRange(date("2025-06-01"), date("2025-06-05")), "")
	require.NoError(t, err)
	assert.False(t, booked, "bookings on other rooms do not count")
}
