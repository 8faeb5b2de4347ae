package booking

import (
	"net/http"
	"time"

	"github.com/hillstay/guesthouse-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidDateRange    = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrHouseNotListed      = apperror.New(http.StatusBadRequest, "house is not open for booking")
	ErrDatesUnavailable    = apperror.New(http.StatusConflict, "selected dates are not available")
	ErrApprovalConflict    = apperror.New(http.StatusConflict, "another booking already covers these dates")
	ErrAlreadyDecided      = apperror.New(http.StatusConflict, "booking has already been decided")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrTransactionRequired = apperror.New(http.StatusBadRequest, "transaction id is required")
)

// Status is the lifecycle of a stay request. Rejected is terminal;
// approved is terminal as well, there is no cancellation path.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Booking represents one stay request for a house.
//
// The interval [CheckIn, CheckOut) is half-open: a stay ending on a day
// and another starting on that same day do not conflict. For any house,
// bookings in pending or approved status are pairwise non-overlapping;
// rejected bookings never block dates.
//
// TotalAmount is nights times the house's nightly price at the moment the
// booking was created; later price changes never alter it.
type Booking struct {
	ID            string
	HouseID       string
	HouseTitle    string
	RenterID      string
	RenterName    string
	OwnerID       string // denormalized from the house at creation time
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TransactionID string
	Message       string
	TotalAmount   int64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Nights returns the number of nights covered by the booking, rounding
// partial days up.
func Nights(checkIn, checkOut time.Time) int {
	const day = 24 * time.Hour
	d := checkOut.Sub(checkIn)
	nights := int(d / day)
	if d%day != 0 {
		nights++
	}
	return nights
}

// Filter narrows booking list queries.
type Filter struct {
	RenterID string
	OwnerID  string
	HouseID  string
	Status   Status
}
