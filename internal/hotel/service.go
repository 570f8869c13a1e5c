package hotel

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

const (
	MinNameLength = 3
	MaxNameLength = 25
)

// CreateRequest defines a new hotel together with its staff account.
type CreateRequest struct {
	Name      string
	RoomCount int
	Location  GeoLocation
	Staff     user.SignUpRequest
}

// UpdateRequest replaces the mutable attributes of a hotel.
type UpdateRequest struct {
	Name      string
	RoomCount int
	Location  GeoLocation
}

// Service defines business logic for hotels.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Hotel, error)
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Hotel, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	userService user.Service
	log         logrus.FieldLogger
}

// NewService creates a new hotel service.
func NewService(repo Repository, userService user.Service, log logrus.FieldLogger) Service {
	return &service{repo: repo, userService: userService, log: log}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Hotel, error) {
	name, err := validate(req.Name, req.RoomCount, req.Location)
	if err != nil {
		return nil, err
	}

	staff, err := s.userService.NewAccount(req.Staff, auth.AuthorityHotel)
	if err != nil {
		return nil, err
	}

	h := &Hotel{
		Name:      name,
		RoomCount: req.RoomCount,
		Location:  req.Location,
	}
	if err := s.repo.CreateWithStaff(ctx, h, staff); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"hotel_id":      h.ID,
		"staff_user_id": h.StaffUserID,
	}).Info("hotel created")
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Hotel, error) {
	name, err := validate(req.Name, req.RoomCount, req.Location)
	if err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	h.Name = name
	h.RoomCount = req.RoomCount
	h.Location = req.Location

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("hotel_id", id).Info("hotel deleted with its rooms and bookings")
	return nil
}

func validate(name string, roomCount int, loc GeoLocation) (string, error) {
	fields := map[string]string{}

	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		fields["name"] = fmt.Sprintf("must be between %d and %d characters", MinNameLength, MaxNameLength)
	}
	if roomCount < 1 {
		fields["roomCount"] = "Hotel should have at least one room"
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		fields["location.latitude"] = "latitude should be between -90 to 90"
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		fields["location.longitude"] = "longitude should be between -180 to 180"
	}

	if len(fields) > 0 {
		return "", apperror.Validation(fields)
	}
	return name, nil
}
