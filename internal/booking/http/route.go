package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the booking routes nested under hotels and rooms.
// Ownership of individual bookings is checked by the service.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddlewares ...gin.HandlerFunc) {
	hotel := g.Group("/hotels/:hotelId", authMiddlewares...)
	{
		hotel.GET("/bookings", h.ListByHotel)

		bookings := hotel.Group("/rooms/:roomId/bookings")
		bookings.GET("", h.ListByRoom)
		bookings.POST("", h.Create)
		bookings.GET("/:bookingId", h.Get)
		bookings.PUT("/:bookingId", h.Update)
		bookings.DELETE("/:bookingId", h.Cancel)
	}
}
