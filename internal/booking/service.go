package booking

import (
	"context"
	"strings"
	"time"

	"github.com/hillstay/guesthouse-backend/internal/house"
	"github.com/hillstay/guesthouse-backend/internal/pkg/keymutex"
	"github.com/hillstay/guesthouse-backend/internal/user"
)

// CreateRequest carries a renter's stay request.
type CreateRequest struct {
	RenterID      string
	RenterName    string
	HouseID       string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TransactionID string
	Message       string
}

// HouseDirectory is the subset of the house service the booking engine
// needs: resolving a house for admission checks and enumerating bookable
// houses for the availability query.
type HouseDirectory interface {
	GetByID(ctx context.Context, id string) (*house.House, error)
	FindBookable(ctx context.Context, excludeIDs []string) ([]*house.House, error)
}

type Service interface {
	// Create admits a renter's stay request. The house must be an
	// approved listing and the dates must be free of pending and
	// approved bookings. The overlap check and the insert run under the
	// house's mutex so two concurrent requests for the same slot cannot
	// both succeed.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// Approve is the final admission gate. It re-runs the overlap check
	// against approved bookings, excluding the booking itself, because
	// another overlapping booking may have been approved since. On
	// conflict the booking stays pending and the owner must reject it.
	Approve(ctx context.Context, id, callerID string) (*Booking, error)

	// Reject is unconditional once authorization and the pending-state
	// check pass.
	Reject(ctx context.Context, id, callerID string) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListMine returns the caller's bookings: renters see stays they
	// requested, owners see requests against their houses, admins see
	// everything.
	ListMine(ctx context.Context, callerID string, role user.Role) ([]*Booking, error)

	// ListOwnerPending is the owner's decision queue, a status-filtered
	// query ordered newest first.
	ListOwnerPending(ctx context.Context, ownerID string) ([]*Booking, error)

	// FindAvailable returns the approved houses with no pending or
	// approved booking intersecting [checkIn, checkOut). It is a
	// point-in-time snapshot and reserves nothing; Create remains the
	// authoritative gate.
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*house.House, error)
}

type service struct {
	repo   Repository
	houses HouseDirectory
	locks  *keymutex.KeyMutex
}

func NewService(repo Repository, houses HouseDirectory) Service {
	return &service{
		repo:   repo,
		houses: houses,
		locks:  keymutex.New(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDateRange
	}
	if strings.TrimSpace(req.TransactionID) == "" {
		return nil, ErrTransactionRequired
	}
	if req.Guests < 1 {
		req.Guests = 1
	}

	h, err := s.houses.GetByID(ctx, req.HouseID)
	if err != nil {
		return nil, err
	}
	if h.Status != house.StatusApproved {
		return nil, ErrHouseNotListed
	}

	// Price snapshot: later price changes must not alter this booking.
	totalAmount := int64(Nights(req.CheckIn, req.CheckOut)) * h.Price

	b := &Booking{
		HouseID:       h.ID,
		RenterID:      req.RenterID,
		RenterName:    req.RenterName,
		OwnerID:       h.OwnerID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Guests:        req.Guests,
		TransactionID: req.TransactionID,
		Message:       req.Message,
		TotalAmount:   totalAmount,
		Status:        StatusPending,
	}

	// Check-then-write must be atomic per house.
	s.locks.Lock(h.ID)
	defer s.locks.Unlock(h.ID)

	conflict, err := s.repo.HasOverlap(ctx, h.ID, req.CheckIn, req.CheckOut, "",
		[]Status{StatusPending, StatusApproved})
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDatesUnavailable
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.HouseTitle = h.Title

	return b, nil
}

func (s *service) Approve(ctx context.Context, id, callerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	// Approval is intentionally permitted even when the house has been
	// unlisted since: listing visibility and booking validity are
	// independent lifecycles.

	s.locks.Lock(b.HouseID)
	defer s.locks.Unlock(b.HouseID)

	// Scoped to approved bookings: among overlapping pendings the first
	// approval wins, and the losers fail here afterwards.
	conflict, err := s.repo.HasOverlap(ctx, b.HouseID, b.CheckIn, b.CheckOut, b.ID,
		[]Status{StatusApproved})
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrApprovalConflict
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusApproved); err != nil {
		return nil, err
	}
	b.Status = StatusApproved
	return b, nil
}

func (s *service) Reject(ctx context.Context, id, callerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusRejected); err != nil {
		return nil, err
	}
	b.Status = StatusRejected
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListMine(ctx context.Context, callerID string, role user.Role) ([]*Booking, error) {
	var filter Filter
	switch role {
	case user.RoleRenter:
		filter.RenterID = callerID
	case user.RoleOwner:
		filter.OwnerID = callerID
	case user.RoleAdmin:
		// admins see everything
	default:
		return nil, ErrPermissionDenied
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListOwnerPending(ctx context.Context, ownerID string) ([]*Booking, error) {
	return s.repo.List(ctx, Filter{OwnerID: ownerID, Status: StatusPending})
}

func (s *service) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*house.House, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	busy, err := s.repo.ConflictingHouseIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return s.houses.FindBookable(ctx, busy)
}
