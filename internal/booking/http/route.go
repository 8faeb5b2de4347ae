package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. All of them require auth;
// creation is renter-only and the pending queue is owner-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware, renterMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", renterMiddleware, h.Create)
		group.GET("/mine", h.ListMine)
		group.GET("/owner/pending", ownerMiddleware, h.ListOwnerPending)
		group.PATCH("/:id/status", h.Decide)
		group.POST("/availability", h.Availability)
	}
}
