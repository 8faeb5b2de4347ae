package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/booking"
	houseHttp "github.com/hillstay/guesthouse-backend/internal/house/http"
	"github.com/hillstay/guesthouse-backend/internal/pkg/response"
	"github.com/hillstay/guesthouse-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// Create submits a stay request for the authenticated renter.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, checkOut, err := parseDateRange(body.CheckIn, body.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	renterID := auth.GetUserID(c)

	var renterName string
	if u, uerr := h.userService.GetByID(c.Request.Context(), renterID); uerr == nil {
		renterName = u.Name
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RenterID:      renterID,
		RenterName:    renterName,
		HouseID:       body.HouseID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        body.Guests,
		TransactionID: body.TransactionID,
		Message:       body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Decide lets the booking's owner approve or reject a pending request.
func (h *Handler) Decide(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body DecideBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	callerID := auth.GetUserID(c)

	var (
		b   *booking.Booking
		err error
	)
	if body.Action == "approve" {
		b, err = h.service.Approve(c.Request.Context(), id, callerID)
	} else {
		b, err = h.service.Reject(c.Request.Context(), id, callerID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListMine returns the caller's bookings according to their role.
func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListMine(c.Request.Context(), auth.GetUserID(c), user.Role(auth.GetUserRole(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewBookingResponses(bookings)))
}

// ListOwnerPending returns the owner's queue of undecided requests.
func (h *Handler) ListOwnerPending(c *gin.Context) {
	bookings, err := h.service.ListOwnerPending(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewBookingResponses(bookings)))
}

// Availability returns the approved houses free for the whole interval.
// It is a snapshot: a house listed here can still lose the slot to a
// concurrent booking, and Create remains the authoritative check.
func (h *Handler) Availability(c *gin.Context) {
	var body AvailabilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, checkOut, err := parseDateRange(body.CheckIn, body.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	houses, err := h.service.FindAvailable(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": houseHttp.NewHouseResponses(houses)})
}
