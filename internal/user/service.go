package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hillstay/guesthouse-backend/internal/auth"
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     Role
	Phone    string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// EnsureAdmin creates the bootstrap admin account if it does not
	// exist yet. Admins cannot self-register.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Only marketplace roles are open for self-registration.
	if req.Role != RoleOwner && req.Role != RoleRenter {
		return nil, ErrInvalidRole
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        cleanEmail,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		u.Phone = &p
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	u := &User{
		Name:         "Administrator",
		Email:        cleanEmail,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
