package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/hotel-booking-backend/internal/authz"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

// RegisterRoutes registers the hotel routes. The collection answers with and
// without a trailing slash. ownerOnly guards mutations that the hotel's own
// staff may perform.
func RegisterRoutes(g *gin.RouterGroup, h *HotelHandler, ownerOnly gin.HandlerFunc, authMiddlewares ...gin.HandlerFunc) {
	hotels := g.Group("/hotels", authMiddlewares...)
	{
		for _, root := range []string{"", "/"} {
			hotels.GET(root, h.List)
			hotels.POST(root, h.Create)
		}
		hotels.GET("/:hotelId", h.Get)
		hotels.PUT("/:hotelId", ownerOnly, h.Update)
		hotels.DELETE("/:hotelId", h.Delete)
	}
}

// OwnerLookup adapts the service for authz.RequireHotelOwner.
func OwnerLookup(service hotel.Service) authz.OwnerLookup {
	return func(ctx context.Context, id string) (authz.Owned, error) {
		if _, err := uuid.Parse(id); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrInvalidID)
		}
		h, err := service.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}
