package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddlewares ...gin.HandlerFunc) {
	rooms := g.Group("/hotels/:hotelId/rooms", authMiddlewares...)
	{
		rooms.GET("/available", h.AvailableRooms)
	}
}
