package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID  int
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

// plainHasher keeps test setup fast; hashing behavior itself belongs to
// the auth package.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, plainHasher{}), repo
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Name:     "Olena",
		Email:    "Olena@Example.com",
		Password: "password123",
		Role:     RoleOwner,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Registers an owner with a normalized email", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)
		assert.Equal(t, "olena@example.com", u.Email)
		assert.Equal(t, RoleOwner, u.Role)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("Rejects duplicate emails", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)

		req := registerReq()
		req.Email = "OLENA@example.com"
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Admins cannot self-register", func(t *testing.T) {
		svc, _ := newTestService()

		req := registerReq()
		req.Role = RoleAdmin
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("Validates name and password", func(t *testing.T) {
		svc, _ := newTestService()

		req := registerReq()
		req.Name = "  "
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrNameRequired)

		req = registerReq()
		req.Password = "short"
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	t.Run("Succeeds with correct credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "olena@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, RoleOwner, u.Role)
	})

	t.Run("Wrong password and unknown email look identical", func(t *testing.T) {
		_, err := svc.Login(ctx, "olena@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "secret-admin"))

	u, err := repo.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)

	// Idempotent on restart.
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "secret-admin"))
}
