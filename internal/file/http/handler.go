package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/file"
	"github.com/hillstay/guesthouse-backend/internal/pkg/response"
)

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart image (house photo or payment QR code) and
// returns its metadata, including the id houses reference.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := h.service.Upload(c.Request.Context(), fileHeader, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file":          f,
		"url":           file.URL(f.ID),
		"thumbnail_url": file.ThumbnailURL(f.ID),
	})
}

// Download streams the original file.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, f, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, f.Size, f.ContentType, stream, nil)
}

// DownloadThumbnail streams the file's thumbnail, if one was generated.
func (h *Handler) DownloadThumbnail(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, _, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, -1, "image/jpeg", stream, nil)
}
