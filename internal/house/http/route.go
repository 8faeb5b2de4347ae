package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers house routes.
// Static paths are registered before the /:id routes so gin does not
// swallow them as ids.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/houses")

	// Public catalog
	group.GET("", h.ListPublic)

	group.GET("/pending", authMiddleware, adminMiddleware, h.ListPending)
	group.GET("/mine", authMiddleware, ownerMiddleware, h.ListMine)
	group.POST("", authMiddleware, ownerMiddleware, h.Create)

	group.GET("/:id", h.Get)
	group.PATCH("/:id/approval", authMiddleware, adminMiddleware, h.Review)
	group.PATCH("/:id/visibility", authMiddleware, h.Visibility)
	group.PATCH("/:id/price", authMiddleware, ownerMiddleware, h.UpdatePrice)
	group.DELETE("/:id", authMiddleware, h.Delete)
}
