package house

import (
	"net/http"
	"time"

	"github.com/hillstay/guesthouse-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "house not found")
	ErrMissingFields     = apperror.New(http.StatusBadRequest, "title, address, price, and media drive link are required")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "nightly price must be positive")
	ErrQRCodeRequired    = apperror.New(http.StatusBadRequest, "payment QR code is required")
	ErrNotPending        = apperror.New(http.StatusConflict, "house is not awaiting review")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "listing status does not allow this transition")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrActiveBookings    = apperror.New(http.StatusConflict, "house has approved upcoming bookings")
)

// Status is the listing lifecycle of a house.
// Only approved houses are visible to renters and to the availability
// query.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusUnlisted Status = "unlisted"
)

// House represents a guest house offered on the marketplace.
type House struct {
	ID               string
	OwnerID          string
	OwnerName        string
	Title            string
	Address          string
	Phone            string
	Price            int64 // nightly rate, in the currency's smallest unit
	Rooms            int
	Guests           int
	College          string
	Distance         string
	Amenities        []string
	Categories       []string
	GenderPreference string
	DriveLink        string
	QRCodeFileID     string
	ImageFileIDs     []string
	Status           Status
	ApprovedBy       *string    // set only when status becomes approved
	ApprovedAt       *time.Time // set only when status becomes approved
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
