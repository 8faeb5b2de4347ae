package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations.
// House photos and payment QR codes are stored through this interface so
// the backend can be swapped without touching the file module.
type Storage interface {
	// Save writes content to the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
