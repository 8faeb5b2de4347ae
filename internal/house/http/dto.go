package http

import (
	"time"

	"github.com/hillstay/guesthouse-backend/internal/house"
)

// CreateHouseBody defines the payload for listing a new house.
type CreateHouseBody struct {
	Title            string   `json:"title" binding:"required"`
	Address          string   `json:"address" binding:"required"`
	OwnerName        string   `json:"owner_name"`
	Phone            string   `json:"phone"`
	Price            int64    `json:"price" binding:"required,gt=0"`
	Rooms            int      `json:"rooms" binding:"omitempty,min=1"`
	Guests           int      `json:"guests" binding:"omitempty,min=1"`
	College          string   `json:"college"`
	Distance         string   `json:"distance"`
	Amenities        []string `json:"amenities"`
	Categories       []string `json:"categories"`
	GenderPreference string   `json:"gender_preference" binding:"omitempty,oneof=Any Male Female"`
	DriveLink        string   `json:"drive_link" binding:"required"`
	QRCodeFileID     string   `json:"qr_code_file_id" binding:"required,uuid"`
	ImageFileIDs     []string `json:"image_file_ids" binding:"omitempty,max=10,dive,uuid"`
}

// ReviewBody decides a pending listing.
type ReviewBody struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// VisibilityBody toggles an owner's listing on or off the market.
type VisibilityBody struct {
	Action string `json:"action" binding:"required,oneof=unlist relist"`
}

// UpdatePriceBody changes the nightly rate.
type UpdatePriceBody struct {
	Price int64 `json:"price" binding:"required,gt=0"`
}

// HouseResponse is the API shape of a house.
type HouseResponse struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	OwnerName        string     `json:"owner_name"`
	Title            string     `json:"title"`
	Address          string     `json:"address"`
	Phone            string     `json:"phone,omitempty"`
	Price            int64      `json:"price"`
	Rooms            int        `json:"rooms,omitempty"`
	Guests           int        `json:"guests,omitempty"`
	College          string     `json:"college,omitempty"`
	Distance         string     `json:"distance,omitempty"`
	Amenities        []string   `json:"amenities"`
	Categories       []string   `json:"categories"`
	GenderPreference string     `json:"gender_preference"`
	DriveLink        string     `json:"drive_link"`
	QRCodeFileID     string     `json:"qr_code_file_id"`
	ImageFileIDs     []string   `json:"image_file_ids"`
	Status           string     `json:"status"`
	ApprovedBy       *string    `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewHouseResponse converts a domain house to the API shape.
func NewHouseResponse(h *house.House) HouseResponse {
	amenities := h.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	categories := h.Categories
	if categories == nil {
		categories = []string{}
	}
	imageIDs := h.ImageFileIDs
	if imageIDs == nil {
		imageIDs = []string{}
	}

	return HouseResponse{
		ID:               h.ID,
		OwnerID:          h.OwnerID,
		OwnerName:        h.OwnerName,
		Title:            h.Title,
		Address:          h.Address,
		Phone:            h.Phone,
		Price:            h.Price,
		Rooms:            h.Rooms,
		Guests:           h.Guests,
		College:          h.College,
		Distance:         h.Distance,
		Amenities:        amenities,
		Categories:       categories,
		GenderPreference: h.GenderPreference,
		DriveLink:        h.DriveLink,
		QRCodeFileID:     h.QRCodeFileID,
		ImageFileIDs:     imageIDs,
		Status:           string(h.Status),
		ApprovedBy:       h.ApprovedBy,
		ApprovedAt:       h.ApprovedAt,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

// NewHouseResponses converts a slice of domain houses.
func NewHouseResponses(houses []*house.House) []HouseResponse {
	items := make([]HouseResponse, len(houses))
	for i, h := range houses {
		items[i] = NewHouseResponse(h)
	}
	return items
}
