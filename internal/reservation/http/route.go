package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the reservation page routes under /courts/:id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	courts := g.Group("/courts/:id")
	courts.Use(authMiddleware)
	{
		courts.GET("/grid", h.Grid)

		courts.GET("/selection", h.Selection)
		courts.DELETE("/selection", h.ClearAll)
		courts.POST("/selection/drag-start", h.DragStart)
		courts.POST("/selection/drag-over", h.DragOver)
		courts.POST("/selection/drag-end", h.DragEnd)
		courts.DELETE("/selection/ranges/:index", h.RemoveRange)

		courts.POST("/checkout", h.Checkout)
	}
}
