package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the room routes under /hotels/:hotelId/rooms.
// The collection answers with and without a trailing slash.
func RegisterRoutes(g *gin.RouterGroup, h *RoomHandler, ownerOnly gin.HandlerFunc, authMiddlewares ...gin.HandlerFunc) {
	rooms := g.Group("/hotels/:hotelId/rooms", authMiddlewares...)
	{
		for _, root := range []string{"", "/"} {
			rooms.GET(root, h.List)
			rooms.POST(root, ownerOnly, h.Create)
		}
		rooms.GET("/:roomId", h.Get)
		rooms.PUT("/:roomId", ownerOnly, h.Update)
		rooms.DELETE("/:roomId", ownerOnly, h.Delete)
	}
}
