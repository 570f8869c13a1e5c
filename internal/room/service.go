package room

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

// Attributes are the mutable fields of a room.
type Attributes struct {
	Number int
	Type   Type
	Price  float64
	Status Status
}

// Service defines business logic for the rooms of a hotel.
// Every method resolves the hotel first, so a missing hotel is always
// reported as hotel.ErrNotFound.
type Service interface {
	Create(ctx context.Context, hotelID string, attrs Attributes) (*Room, error)
	Get(ctx context.Context, hotelID, roomID string) (*Room, error)
	List(ctx context.Context, hotelID string, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, hotelID, roomID string, attrs Attributes) (*Room, error)
	Delete(ctx context.Context, hotelID, roomID string) error
}

type service struct {
	repo         Repository
	hotelService hotel.Service
	log          logrus.FieldLogger
}

// NewService creates a new room service.
func NewService(repo Repository, hotelService hotel.Service, log logrus.FieldLogger) Service {
	return &service{repo: repo, hotelService: hotelService, log: log}
}

func (s *service) Create(ctx context.Context, hotelID string, attrs Attributes) (*Room, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	if _, err := s.hotelService.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}

	r := &Room{
		HotelID: hotelID,
		Number:  attrs.Number,
		Type:    attrs.Type,
		Price:   attrs.Price,
		Status:  attrs.Status,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"hotel_id": hotelID, "room_id": r.ID}).Info("room created")
	return r, nil
}

func (s *service) Get(ctx context.Context, hotelID, roomID string) (*Room, error) {
	if _, err := s.hotelService.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.HotelID != hotelID {
		return nil, ErrNotFoundInHotel
	}
	return r, nil
}

func (s *service) List(ctx context.Context, hotelID string, filter Filter) ([]*Room, int, error) {
	if _, err := s.hotelService.GetByID(ctx, hotelID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, hotelID, filter)
}

func (s *service) Update(ctx context.Context, hotelID, roomID string, attrs Attributes) (*Room, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	r, err := s.Get(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}

	r.Number = attrs.Number
	r.Type = attrs.Type
	r.Price = attrs.Price
	r.Status = attrs.Status

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, hotelID, roomID string) error {
	if _, err := s.Get(ctx, hotelID, roomID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, roomID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"hotel_id": hotelID, "room_id": roomID}).Info("room deleted with its bookings")
	return nil
}

func (a Attributes) validate() error {
	fields := map[string]string{}
	if a.Number < 1 {
		fields["roomNumber"] = "room number must be at least 1"
	}
	if !a.Type.Valid() {
		fields["type"] = "must be one of: SINGLE DOUBLE TWIN TRIPLE SUITE"
	}
	if a.Price < 0 {
		fields["price"] = "Invalid price"
	}
	if !a.Status.Valid() {
		fields["status"] = "must be one of: AVAILABLE UNAVAILABLE"
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}
