package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the account routes. sign-up and login are public.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddlewares ...gin.HandlerFunc) {
	users := g.Group("/users")
	{
		users.POST("/sign-up", h.SignUp)
		users.POST("/login", h.Login)
	}

	private := users.Group("", authMiddlewares...)
	{
		private.GET("/me", h.Me)
	}
}
