package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers file routes. Uploading is restricted to
// owners; downloads are public so listing pages can render images.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/files")

	group.POST("", authMiddleware, ownerMiddleware, h.Upload)
	group.GET("/:id", h.Download)
	group.GET("/:id/thumbnail", h.DownloadThumbnail)
}
