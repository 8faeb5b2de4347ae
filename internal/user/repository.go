package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, phone, avatar_url, created_at
		FROM public.users
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "GetByEmail")
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, phone, avatar_url, created_at
		FROM public.users
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "GetByID")
}

func (r *pgxUserRepository) scanOne(row pgx.Row, op string) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Phone,
		&u.AvatarURL,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s query failed: %w", op, err)
	}
	return &u, nil
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (name, email, password_hash, role, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.AvatarURL,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}
