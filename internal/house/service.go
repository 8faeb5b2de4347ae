package house

import (
	"context"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// CreateRequest carries the fields an owner submits when listing a house.
type CreateRequest struct {
	OwnerID          string
	OwnerName        string
	Title            string
	Address          string
	Phone            string
	Price            int64
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
}

// BookingGuard reports whether a house still has approved stays that have
// not ended. The booking module provides the implementation; the interface
// lives here to keep the dependency pointing one way.
type BookingGuard interface {
	HasApprovedFutureBookings(ctx context.Context, houseID string, from time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*House, error)
	GetByID(ctx context.Context, id string) (*House, error)

	// ListPublic returns approved houses only, served through a short
	// TTL read cache. The booking admission path never reads it.
	ListPublic(ctx context.Context) ([]*House, error)

	// ListPending is the admin review queue: a status-filtered query,
	// never cached state.
	ListPending(ctx context.Context) ([]*House, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*House, error)

	// FindBookable returns approved houses whose id is not in excludeIDs.
	// Used by the availability query engine.
	FindBookable(ctx context.Context, excludeIDs []string) ([]*House, error)

	// Review decides a pending listing: approve records the reviewer and
	// timestamp, reject is terminal.
	Review(ctx context.Context, id string, approve bool, adminID string) (*House, error)

	// Unlist takes an approved house off the market; Relist re-queues an
	// unlisted house for admin review and clears prior approval metadata.
	Unlist(ctx context.Context, id, callerID string, isAdmin bool) (*House, error)
	Relist(ctx context.Context, id, callerID string, isAdmin bool) (*House, error)

	// UpdatePrice changes the nightly rate. Existing bookings keep the
	// amount computed at their creation time.
	UpdatePrice(ctx context.Context, id, ownerID string, price int64) (*House, error)

	// Delete removes a house. It is refused while approved bookings with
	// a future checkout exist.
	Delete(ctx context.Context, id, callerID string) error
}

const publicListingKey = "houses:public"

type service struct {
	repo     Repository
	bookings BookingGuard

	listingCache *ccache.Cache[[]*House]
	cacheTTL     time.Duration
}

func NewService(repo Repository, bookings BookingGuard, cacheTTL time.Duration) Service {
	return &service{
		repo:         repo,
		bookings:     bookings,
		listingCache: ccache.New(ccache.Configure[[]*House]().MaxSize(16)),
		cacheTTL:     cacheTTL,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*House, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.DriveLink) == "" {
		return nil, ErrMissingFields
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if strings.TrimSpace(req.QRCodeFileID) == "" {
		return nil, ErrQRCodeRequired
	}

	gender := req.GenderPreference
	if gender == "" {
		gender = "Any"
	}

	h := &House{
		OwnerID:          req.OwnerID,
		OwnerName:        req.OwnerName,
		Title:            req.Title,
		Address:          req.Address,
		Phone:            req.Phone,
		Price:            req.Price,
		Rooms:            req.Rooms,
		Guests:           req.Guests,
		College:          req.College,
		Distance:         req.Distance,
		Amenities:        req.Amenities,
		Categories:       req.Categories,
		GenderPreference: gender,
		DriveLink:        req.DriveLink,
		QRCodeFileID:     req.QRCodeFileID,
		ImageFileIDs:     req.ImageFileIDs,
		Status:           StatusPending,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*House, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListPublic(ctx context.Context) ([]*House, error) {
	if item := s.listingCache.Get(publicListingKey); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	houses, err := s.repo.ListByStatus(ctx, StatusApproved)
	if err != nil {
		return nil, err
	}

	s.listingCache.Set(publicListingKey, houses, s.cacheTTL)
	return houses, nil
}

func (s *service) ListPending(ctx context.Context) ([]*House, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*House, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) FindBookable(ctx context.Context, excludeIDs []string) ([]*House, error) {
	return s.repo.ListApprovedExcluding(ctx, excludeIDs)
}

func (s *service) Review(ctx context.Context, id string, approve bool, adminID string) (*House, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.Status != StatusPending {
		return nil, ErrNotPending
	}

	if approve {
		now := time.Now().UTC()
		h.Status = StatusApproved
		h.ApprovedBy = &adminID
		h.ApprovedAt = &now
	} else {
		h.Status = StatusRejected
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.listingCache.Delete(publicListingKey)
	return h, nil
}

func (s *service) Unlist(ctx context.Context, id, callerID string, isAdmin bool) (*House, error) {
	h, err := s.authorizeVisibilityChange(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if h.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}
	h.Status = StatusUnlisted

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.listingCache.Delete(publicListingKey)
	return h, nil
}

func (s *service) Relist(ctx context.Context, id, callerID string, isAdmin bool) (*House, error) {
	h, err := s.authorizeVisibilityChange(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if h.Status != StatusUnlisted {
		return nil, ErrInvalidTransition
	}

	// Relisting re-enters the admin review queue from scratch.
	h.Status = StatusPending
	h.ApprovedBy = nil
	h.ApprovedAt = nil

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) authorizeVisibilityChange(ctx context.Context, id, callerID string, isAdmin bool) (*House, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != callerID && !isAdmin {
		return nil, ErrPermissionDenied
	}
	return h, nil
}

func (s *service) UpdatePrice(ctx context.Context, id, ownerID string, price int64) (*House, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}

	h.Price = price
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.listingCache.Delete(publicListingKey)
	return h, nil
}

func (s *service) Delete(ctx context.Context, id, callerID string) error {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if h.OwnerID != callerID {
		return ErrPermissionDenied
	}

	blocked, err := s.bookings.HasApprovedFutureBookings(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if blocked {
		return ErrActiveBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.listingCache.Delete(publicListingKey)
	return nil
}
