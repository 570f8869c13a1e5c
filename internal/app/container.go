package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/api"
	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/authz"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

// Repositories is the Entity Store the services run on.
type Repositories struct {
	Users    user.Repository
	Hotels   hotel.Repository
	Rooms    room.Repository
	Bookings booking.Repository
}

// PgxRepositories backs every repository with the same Postgres pool.
func PgxRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    user.NewPgxRepository(pool),
		Hotels:   hotel.NewPgxRepository(pool),
		Rooms:    room.NewPgxRepository(pool),
		Bookings: booking.NewPgxRepository(pool),
	}
}

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Repositories Repositories
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Logger       *logrus.Logger

	// Clock overrides time.Now for booking date checks.
	Clock func() time.Time
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	repos := cfg.Repositories

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("init authorization policy: %w", err)
	}

	// User Module
	userService := user.NewService(repos.Users, passwordHasher, log.WithField("module", "user"))

	// Hotel Module
	hotelService := hotel.NewService(repos.Hotels, userService, log.WithField("module", "hotel"))

	// Room Module
	roomService := room.NewService(repos.Rooms, hotelService, log.WithField("module", "room"))

	// Availability
	checker := availability.NewChecker(repos.Bookings, repos.Rooms)

	// Booking Module
	var bookingOpts []booking.Option
	if cfg.Clock != nil {
		bookingOpts = append(bookingOpts, booking.WithClock(cfg.Clock))
	}
	bookingService := booking.NewService(
		repos.Bookings, hotelService, roomService, checker,
		log.WithField("module", "booking"), bookingOpts...,
	)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         log,
		UserService:    userService,
		HotelService:   hotelService,
		RoomService:    roomService,
		BookingService: bookingService,
		Checker:        checker,
		JWTManager:     jwtManager,
		Enforcer:       enforcer,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}, nil
}
