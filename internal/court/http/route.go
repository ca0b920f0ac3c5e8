package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public court catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *CourtHandler) {
	group := g.Group("/courts")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}
}
