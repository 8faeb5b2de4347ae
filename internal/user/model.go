package user

import (
	"net/http"
	"time"

	"github.com/hillstay/guesthouse-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be owner or renter")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// Role determines which marketplace operations a user may perform.
type Role string

const (
	RoleAdmin  Role = "admin"  // moderates house listings
	RoleOwner  Role = "owner"  // lists houses, decides booking requests
	RoleRenter Role = "renter" // requests bookings
)

// User represents an account in the marketplace.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	AvatarURL    *string
	CreatedAt    time.Time
}
