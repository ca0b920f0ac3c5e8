package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the "my bookings" routes and the gym owner views.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	mine := g.Group("/me/bookings")
	mine.Use(authMiddleware)
	{
		mine.GET("", h.ListMine)
		mine.POST("/:id/cancel", h.Cancel)
	}

	owner := g.Group("/owner")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("/bookings", h.ListAll)
		owner.PATCH("/bookings/:id", h.UpdateStatus)
		owner.GET("/revenue", h.Revenue)
	}
}
