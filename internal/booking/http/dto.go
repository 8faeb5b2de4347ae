package http

import (
	"time"

	"github.com/hillstay/guesthouse-backend/internal/booking"
)

// DateLayout is the wire format for stay dates. Bookings are date-granular;
// parsed values are midnight UTC.
const DateLayout = "2006-01-02"

// CreateBookingBody defines the payload for a renter's stay request.
type CreateBookingBody struct {
	HouseID       string `json:"house_id" binding:"required,uuid"`
	CheckIn       string `json:"check_in" binding:"required"`
	CheckOut      string `json:"check_out" binding:"required"`
	Guests        int    `json:"guests" binding:"omitempty,min=1"`
	TransactionID string `json:"transaction_id" binding:"required"`
	Message       string `json:"message"`
}

// DecideBookingBody carries the owner's decision on a pending request.
type DecideBookingBody struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// AvailabilityBody defines the interval for an availability query.
type AvailabilityBody struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	ID            string    `json:"id"`
	HouseID       string    `json:"house_id"`
	HouseTitle    string    `json:"house_title,omitempty"`
	RenterID      string    `json:"renter_id"`
	RenterName    string    `json:"renter_name,omitempty"`
	OwnerID       string    `json:"owner_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Guests        int       `json:"guests"`
	TransactionID string    `json:"transaction_id"`
	Message       string    `json:"message,omitempty"`
	TotalAmount   int64     `json:"total_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking to the API shape.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		HouseID:       b.HouseID,
		HouseTitle:    b.HouseTitle,
		RenterID:      b.RenterID,
		RenterName:    b.RenterName,
		OwnerID:       b.OwnerID,
		CheckIn:       b.CheckIn.Format(DateLayout),
		CheckOut:      b.CheckOut.Format(DateLayout),
		Guests:        b.Guests,
		TransactionID: b.TransactionID,
		Message:       b.Message,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// NewBookingResponses converts a slice of domain bookings.
func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}

// parseDateRange parses the wire dates. Unparseable dates and inverted
// ranges both surface as an invalid interval.
func parseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, booking.ErrInvalidDateRange
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, booking.ErrInvalidDateRange
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, booking.ErrInvalidDateRange
	}
	return in, out, nil
}
