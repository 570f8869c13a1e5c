package authz

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

// RequireRole rejects callers whose authority is not granted the matched route.
// It MUST be used after auth.AuthRequired.
func RequireRole(en *Enforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.GetPrincipal(c)
		if !ok {
			response.Error(c, auth.ErrMissingToken)
			return
		}

		allowed, err := en.Allowed(p.Authority.String(), routeTemplate(c), c.Request.Method)
		if err != nil {
			response.Error(c, apperror.Internal(err))
			return
		}
		if !allowed {
			logging.FromContext(c).WithFields(logrus.Fields{
				"user_id":   p.UserID,
				"authority": p.Authority,
			}).Warn("role not permitted for route")
			response.Error(c, apperror.ErrUnauthorizedUser)
			return
		}
		c.Next()
	}
}

// routeTemplate is the matched route without a trailing slash, so
// "/hotels/" is governed by the same policy line as "/hotels".
func routeTemplate(c *gin.Context) string {
	route := c.FullPath()
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}

// OwnerLookup loads the resource identified by a path parameter.
type OwnerLookup func(ctx context.Context, id string) (Owned, error)

// RequireHotelOwner lets the request through only when the caller owns the
// hotel named by the hotelId path parameter.
func RequireHotelOwner(lookup OwnerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.GetPrincipal(c)
		if !ok {
			response.Error(c, auth.ErrMissingToken)
			return
		}
		if IsAdmin(p) {
			c.Next()
			return
		}

		hotel, err := lookup(c.Request.Context(), c.Param("hotelId"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if !OwnsHotel(p, hotel) {
			response.Error(c, apperror.ErrUnauthorizedUser)
			return
		}
		c.Next()
	}
}
