package booking

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/authz"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// Details are the caller supplied fields of a booking.
type Details struct {
	GuestName string
	Contact   ContactInfo
	CheckIn   time.Time
	CheckOut  time.Time
}

// Service manages the booking lifecycle. The caller is always passed in
// explicitly and every check is made against it.
type Service interface {
	Create(ctx context.Context, p auth.Principal, hotelID, roomID string, d Details) (*Booking, error)
	Get(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string) (*Booking, error)
	ListByHotel(ctx context.Context, p auth.Principal, hotelID string, filter Filter) ([]*Booking, int, error)
	ListByRoom(ctx context.Context, p auth.Principal, hotelID, roomID string, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string, d Details) (*Booking, error)
	// Cancel permanently removes the booking.
	Cancel(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string) error
}

// Option configures the service.
type Option func(*service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	repo         Repository
	hotelService hotel.Service
	roomService  room.Service
	checker      *availability.Checker
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewService(
	repo Repository,
	hotelService hotel.Service,
	roomService room.Service,
	checker *availability.Checker,
	log logrus.FieldLogger,
	opts ...Option,
) Service {
	s := &service{
		repo:         repo,
		hotelService: hotelService,
		roomService:  roomService,
		checker:      checker,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, p auth.Principal, hotelID, roomID string, d Details) (*Booking, error) {
	rng, err := s.validate(d)
	if err != nil {
		return nil, err
	}

	if _, err := s.hotelService.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	r, err := s.roomService.Get(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	if r.Status == room.StatusUnavailable {
		return nil, room.ErrUnavailable
	}

	booked, err := s.checker.IsBooked(ctx, roomID, rng, "")
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrRoomAlreadyBooked
	}

	b := &Booking{
		HotelID:   hotelID,
		RoomID:    roomID,
		UserID:    p.UserID,
		UserEmail: p.Email,
		GuestName: strings.TrimSpace(d.GuestName),
		Contact:   ContactInfo{Address: strings.TrimSpace(d.Contact.Address), Phone: d.Contact.Phone},
		CheckIn:   rng.CheckIn,
		CheckOut:  rng.CheckOut,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.entry(b).Info("booking created")
	return b, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string) (*Booking, error) {
	h, _, b, err := s.resolve(ctx, hotelID, roomID, bookingID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewBooking(p, b, h) {
		return nil, apperror.ErrUnauthorizedUser
	}
	return b, nil
}

func (s *service) ListByHotel(ctx context.Context, p auth.Principal, hotelID string, filter Filter) ([]*Booking, int, error) {
	h, err := s.hotelService.GetByID(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}

	filter.HotelID = hotelID
	filter.RoomID = ""
	return s.repo.List(ctx, scope(p, h, filter))
}

func (s *service) ListByRoom(ctx context.Context, p auth.Principal, hotelID, roomID string, filter Filter) ([]*Booking, int, error) {
	h, err := s.hotelService.GetByID(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.roomService.Get(ctx, hotelID, roomID); err != nil {
		return nil, 0, err
	}

	filter.HotelID = hotelID
	filter.RoomID = roomID
	return s.repo.List(ctx, scope(p, h, filter))
}

func (s *service) Update(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string, d Details) (*Booking, error) {
	rng, err := s.validate(d)
	if err != nil {
		return nil, err
	}

	_, r, b, err := s.resolve(ctx, hotelID, roomID, bookingID)
	if err != nil {
		return nil, err
	}
	if !authz.OwnsBooking(p, b) {
		return nil, apperror.ErrUnauthorizedUser
	}
	if r.Status == room.StatusUnavailable {
		return nil, room.ErrUnavailable
	}

	booked, err := s.checker.IsBooked(ctx, roomID, rng, b.ID)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrRoomAlreadyBooked
	}

	b.GuestName = strings.TrimSpace(d.GuestName)
	b.Contact = ContactInfo{Address: strings.TrimSpace(d.Contact.Address), Phone: d.Contact.Phone}
	b.CheckIn = rng.CheckIn
	b.CheckOut = rng.CheckOut

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.entry(b).Info("booking updated")
	return b, nil
}

func (s *service) Cancel(ctx context.Context, p auth.Principal, hotelID, roomID, bookingID string) error {
	_, _, b, err := s.resolve(ctx, hotelID, roomID, bookingID)
	if err != nil {
		return err
	}
	if !authz.OwnsBooking(p, b) {
		return apperror.ErrUnauthorizedUser
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return err
	}

	s.entry(b).WithField("cancelled_by", p.UserID).Info("booking cancelled")
	return nil
}

// resolve loads the hotel, room and booking named by a booking path and
// checks they belong together.
func (s *service) resolve(ctx context.Context, hotelID, roomID, bookingID string) (*hotel.Hotel, *room.Room, *Booking, error) {
	h, err := s.hotelService.GetByID(ctx, hotelID)
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := s.roomService.Get(ctx, hotelID, roomID)
	if err != nil {
		return nil, nil, nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, err
	}
	if b.HotelID != hotelID {
		return nil, nil, nil, room.ErrNotFoundInHotel
	}
	if b.RoomID != roomID {
		return nil, nil, nil, ErrNotFound
	}
	return h, r, b, nil
}

func (s *service) validate(d Details) (availability.DateRange, error) {
	rng := availability.NewDateRange(d.CheckIn, d.CheckOut)
	if err := rng.Validate(); err != nil {
		return rng, err
	}
	if rng.StartsBefore(s.now().UTC()) {
		return rng, ErrCheckInInPast
	}

	fields := map[string]string{}
	if n := utf8.RuneCountInString(strings.TrimSpace(d.GuestName)); n < MinGuestNameLength || n > MaxGuestNameLength {
		fields["guestName"] = fmt.Sprintf("must be between %d and %d characters", MinGuestNameLength, MaxGuestNameLength)
	}
	if strings.TrimSpace(d.Contact.Address) == "" {
		fields["contactInfo.address"] = "must not be blank"
	}
	if d.Contact.Phone < MinPhone || d.Contact.Phone > MaxPhone {
		fields["contactInfo.phone"] = "phone number should be valid"
	}
	if len(fields) > 0 {
		return rng, apperror.Validation(fields)
	}
	return rng, nil
}

func (s *service) entry(b *Booking) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"hotel_id":   b.HotelID,
		"room_id":    b.RoomID,
		"user_id":    b.UserID,
	})
}

// scope restricts a listing to the caller's own bookings unless the caller
// manages the hotel.
func scope(p auth.Principal, h *hotel.Hotel, filter Filter) Filter {
	if authz.OwnsHotel(p, h) {
		filter.UserID = ""
		return filter
	}
	filter.UserID = p.UserID
	return filter
}
