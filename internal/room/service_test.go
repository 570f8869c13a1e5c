package room_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/store/memory"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

const missingID = "00000000-0000-0000-0000-000000000000"

func setup(t *testing.T, capacity int) (room.Service, hotel.Service, string) {
	t.Helper()
	log := logging.Discard()
	store := memory.New()

	userService := user.NewService(store.Users(), auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost), log)
	hotelService := hotel.NewService(store.Hotels(), userService, log)
	roomService := room.NewService(store.Rooms(), hotelService, log)

	h, err := hotelService.Create(context.Background(), hotel.CreateRequest{
		Name:      "Mountain Inn",
		RoomCount: capacity,
		Staff:     user.SignUpRequest{Name: "Inn Staff", Email: "staff@inn.com", Password: "password123"},
	})
	require.NoError(t, err)
	return roomService, hotelService, h.ID
}

func attrs(number int) room.Attributes {
	return room.Attributes{Number: number, Type: room.TypeSingle, Price: 75.5, Status: room.StatusAvailable}
}

func TestCreate_Capacity(t *testing.T) {
	ctx := context.Background()
	service, _, hotelID := setup(t, 2)

	_, err := service.Create(ctx, hotelID, attrs(1))
	require.NoError(t, err)
	_, err = service.Create(ctx, hotelID, attrs(2))
	require.NoError(t, err)

	_, err = service.Create(ctx, hotelID, attrs(3))
	assert.ErrorIs(t, err, room.ErrHotelMaximumRoomCount)
}

func TestCreate_DuplicateNumber(t *testing.T) {
	ctx := context.Background()
	service, _, hotelID := setup(t, 5)

	_, err := service.Create(ctx, hotelID, attrs(7))
	require.NoError(t, err)

	_, err = service.Create(ctx, hotelID, attrs(7))
	assert.ErrorIs(t, err, room.ErrAlreadyExists)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	service, _, hotelID := setup(t, 5)

	_, err := service.Create(ctx, hotelID, room.Attributes{Number: 0, Type: "PENTHOUSE", Price: -1, Status: "OPEN"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 4)

	_, err = service.Create(ctx, missingID, attrs(1))
	assert.ErrorIs(t, err, hotel.ErrNotFound)
}

func TestGet_RoomOfAnotherHotel(t *testing.T) {
	ctx := context.Background()
	service, hotelService, hotelID := setup(t, 5)

	r, err := service.Create(ctx, hotelID, attrs(1))
	require.NoError(t, err)

	other, err := hotelService.Create(ctx, hotel.CreateRequest{
		Name:      "Valley Inn",
		RoomCount: 1,
		Staff:     user.SignUpRequest{Name: "Valley Staff", Email: "staff@valley.com", Password: "password123"},
	})
	require.NoError(t, err)

	_, err = service.Get(ctx, other.ID, r.ID)
	assert.ErrorIs(t, err, room.ErrNotFoundInHotel)

	_, err = service.Get(ctx, hotelID, missingID)
	assert.ErrorIs(t, err, room.ErrNotFound)

	got, err := service.Get(ctx, hotelID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Number)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service, _, hotelID := setup(t, 5)

	r, err := service.Create(ctx, hotelID, attrs(1))
	require.NoError(t, err)
	_, err = service.Create(ctx, hotelID, attrs(2))
	require.NoError(t, err)

	updated, err := service.Update(ctx, hotelID, r.ID, room.Attributes{Number: 10, Type: room.TypeSuite, Price: 300, Status: room.StatusUnavailable})
	require.NoError(t, err)
	assert.Equal(t, room.TypeSuite, updated.Type)
	assert.Equal(t, room.StatusUnavailable, updated.Status)

	_, err = service.Update(ctx, hotelID, r.ID, attrs(2))
	assert.ErrorIs(t, err, room.ErrAlreadyExists)

	require.NoError(t, service.Delete(ctx, hotelID, r.ID))
	_, err = service.Get(ctx, hotelID, r.ID)
	assert.ErrorIs(t, err, room.ErrNotFound)

	rooms, total, err := service.List(ctx, hotelID, room.Filter{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rooms, 1)
	assert.Equal(t, 2, rooms[0].Number)
}
