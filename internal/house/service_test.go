package house

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID int
	houses map[string]*House

	listByStatusCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{houses: make(map[string]*House)}
}

func (r *fakeRepository) Create(ctx context.Context, h *House) error {
	r.nextID++
	h.ID = fmt.Sprintf("house-%d", r.nextID)
	h.CreatedAt = time.Now().UTC()
	h.UpdatedAt = h.CreatedAt
	clone := *h
	r.houses[h.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*House, error) {
	h, ok := r.houses[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *fakeRepository) ListByStatus(ctx context.Context, status Status) ([]*House, error) {
	r.listByStatusCalls++
	var out []*House
	for _, h := range r.houses {
		if h.Status == status {
			clone := *h
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*House, error) {
	var out []*House
	for _, h := range r.houses {
		if h.OwnerID == ownerID {
			clone := *h
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListApprovedExcluding(ctx context.Context, excludeIDs []string) ([]*House, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []*House
	for _, h := range r.houses {
		if h.Status == StatusApproved && !excluded[h.ID] {
			clone := *h
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, h *House) error {
	if _, ok := r.houses[h.ID]; !ok {
		return ErrNotFound
	}
	h.UpdatedAt = time.Now().UTC()
	clone := *h
	r.houses[h.ID] = &clone
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.houses[id]; !ok {
		return ErrNotFound
	}
	delete(r.houses, id)
	return nil
}

type fakeBookingGuard struct {
	blocked map[string]bool
}

func (g *fakeBookingGuard) HasApprovedFutureBookings(ctx context.Context, houseID string, from time.Time) (bool, error) {
	return g.blocked[houseID], nil
}

func newTestService() (Service, *fakeRepository, *fakeBookingGuard) {
	repo := newFakeRepository()
	guard := &fakeBookingGuard{blocked: make(map[string]bool)}
	return NewService(repo, guard, time.Minute), repo, guard
}

func validCreateReq() CreateRequest {
	return CreateRequest{
		OwnerID:      "owner-1",
		OwnerName:    "Olena",
		Title:        "Lakeside Loft",
		Address:      "12 Shore Rd",
		Price:        1200,
		Rooms:        2,
		Guests:       4,
		DriveLink:    "https://drive.example.com/folder",
		QRCodeFileID: "qr-file-1",
	}
}

func TestCreateHouse(t *testing.T) {
	ctx := context.Background()

	t.Run("New listings start pending review", func(t *testing.T) {
		svc, _, _ := newTestService()

		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, h.Status)
		assert.Nil(t, h.ApprovedBy)
		assert.Equal(t, "Any", h.GenderPreference)
	})

	t.Run("Validates required fields", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := validCreateReq()
		req.Title = "  "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrMissingFields)

		req = validCreateReq()
		req.Price = 0
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		req = validCreateReq()
		req.QRCodeFileID = ""
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrQRCodeRequired)
	})
}

func TestReviewHouse(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve records the reviewer and timestamp", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		got, err := svc.Review(ctx, h.ID, true, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, "admin-1", *got.ApprovedBy)
		assert.NotNil(t, got.ApprovedAt)
	})

	t.Run("Reject leaves no approval metadata", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		got, err := svc.Review(ctx, h.ID, false, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, got.Status)
		assert.Nil(t, got.ApprovedBy)
	})

	t.Run("Only pending listings can be reviewed", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		_, err = svc.Review(ctx, h.ID, true, "admin-1")
		require.NoError(t, err)

		_, err = svc.Review(ctx, h.ID, true, "admin-1")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestListingVisibility(t *testing.T) {
	ctx := context.Background()

	approvedHouse := func(t *testing.T, svc Service) *House {
		t.Helper()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)
		h, err = svc.Review(ctx, h.ID, true, "admin-1")
		require.NoError(t, err)
		return h
	}

	t.Run("Owner can unlist an approved house", func(t *testing.T) {
		svc, _, _ := newTestService()
		h := approvedHouse(t, svc)

		got, err := svc.Unlist(ctx, h.ID, "owner-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusUnlisted, got.Status)
	})

	t.Run("Relist re-enters review and clears approval metadata", func(t *testing.T) {
		svc, _, _ := newTestService()
		h := approvedHouse(t, svc)

		_, err := svc.Unlist(ctx, h.ID, "owner-1", false)
		require.NoError(t, err)

		got, err := svc.Relist(ctx, h.ID, "owner-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
		assert.Nil(t, got.ApprovedBy)
		assert.Nil(t, got.ApprovedAt)
	})

	t.Run("Transitions are checked against the current status", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		// Pending cannot be unlisted, approved cannot be relisted.
		_, err = svc.Unlist(ctx, h.ID, "owner-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		h = approvedHouse(t, svc)
		_, err = svc.Relist(ctx, h.ID, "owner-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Strangers cannot change visibility, admins can", func(t *testing.T) {
		svc, _, _ := newTestService()
		h := approvedHouse(t, svc)

		_, err := svc.Unlist(ctx, h.ID, "owner-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.Unlist(ctx, h.ID, "admin-1", true)
		assert.NoError(t, err)
	})
}

func TestUpdatePrice(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	h, err := svc.Create(ctx, validCreateReq())
	require.NoError(t, err)

	t.Run("Owner updates the nightly rate", func(t *testing.T) {
		got, err := svc.UpdatePrice(ctx, h.ID, "owner-1", 1500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), got.Price)
	})

	t.Run("Rejects non-positive prices", func(t *testing.T) {
		_, err := svc.UpdatePrice(ctx, h.ID, "owner-1", 0)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Only the owner may change the price", func(t *testing.T) {
		_, err := svc.UpdatePrice(ctx, h.ID, "owner-2", 1500)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestDeleteHouse(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner deletes their house", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, h.ID, "owner-1"))

		_, err = svc.GetByID(ctx, h.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Blocked while approved upcoming bookings exist", func(t *testing.T) {
		svc, _, guard := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		guard.blocked[h.ID] = true
		err = svc.Delete(ctx, h.ID, "owner-1")
		assert.ErrorIs(t, err, ErrActiveBookings)

		_, err = svc.GetByID(ctx, h.ID)
		assert.NoError(t, err)
	})

	t.Run("Only the owner may delete", func(t *testing.T) {
		svc, _, _ := newTestService()
		h, err := svc.Create(ctx, validCreateReq())
		require.NoError(t, err)

		err = svc.Delete(ctx, h.ID, "owner-2")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestListPublicCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	h, err := svc.Create(ctx, validCreateReq())
	require.NoError(t, err)
	_, err = svc.Review(ctx, h.ID, true, "admin-1")
	require.NoError(t, err)

	t.Run("Repeated reads are served from cache", func(t *testing.T) {
		first, err := svc.ListPublic(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)

		calls := repo.listByStatusCalls
		second, err := svc.ListPublic(ctx)
		require.NoError(t, err)
		assert.Len(t, second, 1)
		assert.Equal(t, calls, repo.listByStatusCalls, "second read should not hit the repository")
	})

	t.Run("Mutations invalidate the cache", func(t *testing.T) {
		_, err := svc.ListPublic(ctx)
		require.NoError(t, err)

		_, err = svc.Unlist(ctx, h.ID, "owner-1", false)
		require.NoError(t, err)

		got, err := svc.ListPublic(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
