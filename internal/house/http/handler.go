package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/house"
	"github.com/hillstay/guesthouse-backend/internal/pkg/request"
	"github.com/hillstay/guesthouse-backend/internal/pkg/response"
	"github.com/hillstay/guesthouse-backend/internal/user"
)

type Handler struct {
	service     house.Service
	userService user.Service
}

func NewHandler(service house.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// Create lists a new house for the authenticated owner. The listing
// starts in pending status and becomes visible once an admin approves it.
func (h *Handler) Create(c *gin.Context) {
	var body CreateHouseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)

	ownerName := body.OwnerName
	if ownerName == "" {
		if u, err := h.userService.GetByID(c.Request.Context(), ownerID); err == nil {
			ownerName = u.Name
		}
	}

	created, err := h.service.Create(c.Request.Context(), house.CreateRequest{
		OwnerID:          ownerID,
		OwnerName:        ownerName,
		Title:            body.Title,
		Address:          body.Address,
		Phone:            body.Phone,
		Price:            body.Price,
		Rooms:            body.Rooms,
		Guests:           body.Guests,
		College:          body.College,
		Distance:         body.Distance,
		Amenities:        body.Amenities,
		Categories:       body.Categories,
		GenderPreference: body.GenderPreference,
		DriveLink:        body.DriveLink,
		QRCodeFileID:     body.QRCodeFileID,
		ImageFileIDs:     body.ImageFileIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewHouseResponse(created))
}

// ListPublic returns the approved houses visible to everyone.
func (h *Handler) ListPublic(c *gin.Context) {
	houses, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewHouseResponses(houses)))
}

// ListPending returns the admin review queue.
func (h *Handler) ListPending(c *gin.Context) {
	houses, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewHouseResponses(houses)))
}

// ListMine returns the authenticated owner's houses in every status.
func (h *Handler) ListMine(c *gin.Context) {
	houses, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewHouseResponses(houses)))
}

// Get returns a single house. Listings that are not approved are only
// visible to their owner and to admins.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if found.Status != house.StatusApproved {
		callerID := auth.GetUserID(c)
		if callerID != found.OwnerID && auth.GetUserRole(c) != string(user.RoleAdmin) {
			// Hide unapproved listings from everyone else.
			response.Error(c, house.ErrNotFound)
			return
		}
	}

	c.JSON(http.StatusOK, NewHouseResponse(found))
}

// Review lets an admin approve or reject a pending listing.
func (h *Handler) Review(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body ReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reviewed, err := h.service.Review(c.Request.Context(), uri.ID, body.Action == "approve", auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewHouseResponse(reviewed))
}

// Visibility lets the owning owner (or an admin) unlist or relist a house.
func (h *Handler) Visibility(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body VisibilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	callerID := auth.GetUserID(c)
	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)

	var (
		updated *house.House
		err     error
	)
	if body.Action == "unlist" {
		updated, err = h.service.Unlist(c.Request.Context(), uri.ID, callerID, isAdmin)
	} else {
		updated, err = h.service.Relist(c.Request.Context(), uri.ID, callerID, isAdmin)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewHouseResponse(updated))
}

// UpdatePrice changes the nightly rate of an owner's house. Existing
// bookings keep the amount computed when they were created.
func (h *Handler) UpdatePrice(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePriceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.UpdatePrice(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewHouseResponse(updated))
}

// Delete removes an owner's house. Deletion is refused while approved
// upcoming bookings exist.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
