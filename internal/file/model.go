package file

import (
	"net/http"
	"time"

	"github.com/hillstay/guesthouse-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "file not found")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "only image uploads are accepted")
	ErrNoThumbnail  = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrFileTooLarge = apperror.New(http.StatusBadRequest, "file exceeds the allowed size")
)

// File is an uploaded image: a house photo or a payment QR code.
type File struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for accessing a file by its ID.
func URL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
