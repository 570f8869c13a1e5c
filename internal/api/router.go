package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/authz"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/hotel-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/hotel-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	hotelHttp "github.com/nekogravitycat/hotel-booking-backend/internal/hotel/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/hotel-booking-backend/internal/room/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/hotel-booking-backend/internal/user/http"
)

// Config holds everything the router needs to register the API.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *logrus.Logger

	UserService    user.Service
	HotelService   hotel.Service
	RoomService    room.Service
	BookingService booking.Service
	Checker        *availability.Checker

	JWTManager *auth.JWTManager
	Enforcer   *authz.Enforcer
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, logging, auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - logging.Middleware: request scoped logrus entry plus one line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logging.Middleware(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: validates the bearer token and loads the caller.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.UserService)
	// roleMiddleware: checks the caller's authority against the route policy.
	roleMiddleware := authz.RequireRole(cfg.Enforcer)
	// ownerMiddleware: admits only the hotel's staff account or an admin.
	ownerMiddleware := authz.RequireHotelOwner(hotelHttp.OwnerLookup(cfg.HotelService))

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	hotelHandler := hotelHttp.NewHandler(cfg.HotelService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.Checker, cfg.HotelService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/api/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, roleMiddleware)
		hotelHttp.RegisterRoutes(v1, hotelHandler, ownerMiddleware, authMiddleware, roleMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware, roleMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, ownerMiddleware, authMiddleware, roleMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, roleMiddleware)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
