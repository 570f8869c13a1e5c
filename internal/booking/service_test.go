package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/store/memory"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

var today = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func details(in, out string) booking.Details {
	return booking.Details{
		GuestName: "John Doe",
		Contact:   booking.ContactInfo{Address: "12 Harbor Road", Phone: 9876543210},
		CheckIn:   date(in),
		CheckOut:  date(out),
	}
}

type env struct {
	service booking.Service
	repo    booking.Repository
	rooms   room.Service
	hotelID string
	roomID  string

	admin auth.Principal
	staff auth.Principal
	alice auth.Principal
	bob   auth.Principal
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	log := logging.Discard()
	store := memory.New()

	userService := user.NewService(store.Users(), auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost), log)
	hotelService := hotel.NewService(store.Hotels(), userService, log)
	roomService := room.NewService(store.Rooms(), hotelService, log)
	checker := availability.NewChecker(store.Bookings(), store.Rooms())
	service := booking.NewService(store.Bookings(), hotelService, roomService, checker, log,
		booking.WithClock(func() time.Time { return today }))

	signUp := func(name, email string) auth.Principal {
		u, err := userService.SignUp(ctx, user.SignUpRequest{Name: name, Email: email, Password: "password123"})
		require.NoError(t, err)
		return u.Principal()
	}

	_, err := userService.EnsureAdmin(ctx, user.SignUpRequest{Name: "Admin", Email: "admin@admin.com", Password: "admin12345"})
	require.NoError(t, err)
	adminUser, err := userService.Login(ctx, "admin@admin.com", "admin12345")
	require.NoError(t, err)

	h, err := hotelService.Create(ctx, hotel.CreateRequest{
		Name:      "Harbor View",
		RoomCount: 2,
		Location:  hotel.GeoLocation{Latitude: 25.03, Longitude: 121.56},
		Staff:     user.SignUpRequest{Name: "Harbor Staff", Email: "staff@harbor.com", Password: "password123"},
	})
	require.NoError(t, err)
	staffUser, err := userService.Login(ctx, "staff@harbor.com", "password123")
	require.NoError(t, err)

	r, err := roomService.Create(ctx, h.ID, room.Attributes{Number: 101, Type: room.TypeDouble, Price: 120, Status: room.StatusAvailable})
	require.NoError(t, err)

	return &env{
		service: service,
		repo:    store.Bookings(),
		rooms:   roomService,
		hotelID: h.ID,
		roomID:  r.ID,
		admin:   adminUser.Principal(),
		staff:   staffUser.Principal(),
		alice:   signUp("Alice", "alice@mail.com"),
		bob:     signUp("Bobby", "bob@mail.com"),
	}
}

func (e *env) book(t *testing.T, p auth.Principal, in, out string) *booking.Booking {
	t.Helper()
	b, err := e.service.Create(context.Background(), p, e.hotelID, e.roomID, details(in, out))
	require.NoError(t, err)
	return b
}

func TestCreate_Conflicts(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	first := e.book(t, e.alice, "2025-06-01", "2025-06-05")
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, e.alice.UserID, first.UserID)

	tests := []struct {
		name    string
		in, out string
		wantErr error
	}{
		{"overlapping stay", "2025-06-03", "2025-06-07", booking.ErrRoomAlreadyBooked},
		{"check-in on existing check-out", "2025-06-05", "2025-06-06", booking.ErrRoomAlreadyBooked},
		{"check-out on existing check-in", "2025-05-28", "2025-06-01", booking.ErrRoomAlreadyBooked},
		{"check-out equals check-in", "2025-07-01", "2025-07-01", booking.ErrCheckOutBeforeCheckIn},
		{"check-out before check-in", "2025-07-05", "2025-07-01", booking.ErrCheckOutBeforeCheckIn},
		{"check-in in the past", "2025-05-19", "2025-05-22", booking.ErrCheckInInPast},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.service.Create(ctx, e.bob, e.hotelID, e.roomID, details(tc.in, tc.out))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("one day gap is free", func(t *testing.T) {
		e.book(t, e.bob, "2025-06-06", "2025-06-08")
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		e.book(t, e.bob, "2025-05-20", "2025-05-22")
	})
}

func TestCreate_Validation(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	d := details("2025-06-01", "2025-06-02")
	d.GuestName = "Jo"
	d.Contact.Phone = 12345

	_, err := e.service.Create(ctx, e.alice, e.hotelID, e.roomID, d)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "guestName")
	assert.Contains(t, appErr.Fields, "contactInfo.phone")
}

func TestCreate_UnavailableRoom(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.rooms.Update(ctx, e.hotelID, e.roomID,
		room.Attributes{Number: 101, Type: room.TypeDouble, Price: 120, Status: room.StatusUnavailable})
	require.NoError(t, err)

	_, err = e.service.Create(ctx, e.alice, e.hotelID, e.roomID, details("2025-06-01", "2025-06-05"))
	assert.ErrorIs(t, err, room.ErrUnavailable)
}

// The service checks the room status before the write. The store checks it
// again under its lock, covering a room switched off in between.
func TestRepository_RechecksRoomStatus(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.book(t, e.alice, "2025-06-01", "2025-06-03")

	_, err := e.rooms.Update(ctx, e.hotelID, e.roomID,
		room.Attributes{Number: 101, Type: room.TypeDouble, Price: 120, Status: room.StatusUnavailable})
	require.NoError(t, err)

	err = e.repo.Create(ctx, &booking.Booking{
		HotelID:   e.hotelID,
		RoomID:    e.roomID,
		UserID:    e.bob.UserID,
		GuestName: "Bobby",
		Contact:   booking.ContactInfo{Address: "3 Pier Lane", Phone: 9123456780},
		CheckIn:   date("2025-07-01"),
		CheckOut:  date("2025-07-02"),
	})
	assert.ErrorIs(t, err, room.ErrUnavailable)

	b.CheckOut = date("2025-06-04")
	assert.ErrorIs(t, e.repo.Update(ctx, b), room.ErrUnavailable)

	_, total, err := e.repo.List(ctx, booking.Filter{RoomID: e.roomID, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestCreate_UnknownHotelAndRoom(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.service.Create(ctx, e.alice, "00000000-0000-0000-0000-000000000000", e.roomID, details("2025-06-01", "2025-06-05"))
	assert.ErrorIs(t, err, hotel.ErrNotFound)

	_, err = e.service.Create(ctx, e.alice, e.hotelID, "00000000-0000-0000-0000-000000000000", details("2025-06-01", "2025-06-05"))
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestCreate_ConcurrentOverlappingRequests(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.service.Create(ctx, e.alice, e.hotelID, e.roomID, details("2025-06-01", "2025-06-05"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, booking.ErrRoomAlreadyBooked):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestUpdate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	mine := e.book(t, e.alice, "2025-06-01", "2025-06-05")
	e.book(t, e.bob, "2025-06-10", "2025-06-12")

	t.Run("overlap with own booking is ignored", func(t *testing.T) {
		got, err := e.service.Update(ctx, e.alice, e.hotelID, e.roomID, mine.ID, details("2025-06-02", "2025-06-06"))
		require.NoError(t, err)
		assert.Equal(t, date("2025-06-02"), got.CheckIn)
		assert.Equal(t, date("2025-06-06"), got.CheckOut)
	})

	t.Run("overlap with another booking conflicts", func(t *testing.T) {
		_, err := e.service.Update(ctx, e.alice, e.hotelID, e.roomID, mine.ID, details("2025-06-08", "2025-06-10"))
		assert.ErrorIs(t, err, booking.ErrRoomAlreadyBooked)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		_, err := e.service.Update(ctx, e.bob, e.hotelID, e.roomID, mine.ID, details("2025-06-02", "2025-06-06"))
		assert.ErrorIs(t, err, apperror.ErrUnauthorizedUser)
	})

	t.Run("admin may update", func(t *testing.T) {
		_, err := e.service.Update(ctx, e.admin, e.hotelID, e.roomID, mine.ID, details("2025-06-01", "2025-06-03"))
		assert.NoError(t, err)
	})

	t.Run("dates are validated", func(t *testing.T) {
		_, err := e.service.Update(ctx, e.alice, e.hotelID, e.roomID, mine.ID, details("2025-06-03", "2025-06-02"))
		assert.ErrorIs(t, err, booking.ErrCheckOutBeforeCheckIn)
	})
}

func TestGet_Visibility(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b := e.book(t, e.alice, "2025-06-01", "2025-06-05")

	for name, p := range map[string]auth.Principal{"owner": e.alice, "admin": e.admin, "hotel staff": e.staff} {
		t.Run(name, func(t *testing.T) {
			got, err := e.service.Get(ctx, p, e.hotelID, e.roomID, b.ID)
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID)
			assert.Equal(t, "alice@mail.com", got.UserEmail)
		})
	}

	_, err := e.service.Get(ctx, e.bob, e.hotelID, e.roomID, b.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorizedUser)

	_, err = e.service.Get(ctx, e.alice, e.hotelID, e.roomID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestGet_WrongRoom(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b := e.book(t, e.alice, "2025-06-01", "2025-06-05")
	other, err := e.rooms.Create(ctx, e.hotelID, room.Attributes{Number: 102, Type: room.TypeSingle, Price: 80, Status: room.StatusAvailable})
	require.NoError(t, err)

	_, err = e.service.Get(ctx, e.alice, e.hotelID, other.ID, b.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestCancel(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b := e.book(t, e.alice, "2025-06-01", "2025-06-05")

	err := e.service.Cancel(ctx, e.bob, e.hotelID, e.roomID, b.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorizedUser)

	err = e.service.Cancel(ctx, e.staff, e.hotelID, e.roomID, b.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorizedUser, "hotel staff cannot cancel guest bookings")

	require.NoError(t, e.service.Cancel(ctx, e.admin, e.hotelID, e.roomID, b.ID))

	_, err = e.service.Get(ctx, e.alice, e.hotelID, e.roomID, b.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)

	// The days are free again.
	e.book(t, e.bob, "2025-06-01", "2025-06-05")
}

func TestList_Scoping(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	e.book(t, e.alice, "2025-06-01", "2025-06-02")
	e.book(t, e.alice, "2025-06-10", "2025-06-11")
	e.book(t, e.bob, "2025-06-20", "2025-06-21")

	tests := []struct {
		name string
		p    auth.Principal
		want int
	}{
		{"user sees own bookings", e.alice, 2},
		{"other user sees own bookings", e.bob, 1},
		{"hotel staff sees all", e.staff, 3},
		{"admin sees all", e.admin, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := e.service.ListByHotel(ctx, tc.p, e.hotelID, booking.Filter{Size: 10})
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
			assert.Len(t, items, tc.want)

			items, total, err = e.service.ListByRoom(ctx, tc.p, e.hotelID, e.roomID, booking.Filter{Size: 10})
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
			assert.Len(t, items, tc.want)
		})
	}

	t.Run("pagination", func(t *testing.T) {
		items, total, err := e.service.ListByHotel(ctx, e.admin, e.hotelID, booking.Filter{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 1)
		assert.Equal(t, date("2025-06-20"), items[0].CheckIn)
	})
}
