package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// HasOverlap reports whether any booking for the house in one of the
	// given statuses intersects the half-open interval [checkIn, checkOut).
	// excludeID lets a booking being approved ignore itself. Admission
	// checks against pending and approved; the approve-time re-check
	// scopes to approved only, so one of several overlapping pendings can
	// still win.
	HasOverlap(ctx context.Context, houseID string, checkIn, checkOut time.Time, excludeID string, statuses []Status) (bool, error)

	// ConflictingHouseIDs returns the distinct house ids that have a
	// pending or approved booking intersecting [checkIn, checkOut),
	// across all houses in one pass.
	ConflictingHouseIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error)

	// HasApprovedFutureBookings reports whether the house has an
	// approved booking whose checkout is after the given instant.
	HasApprovedFutureBookings(ctx context.Context, houseID string, from time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("house_id", "renter_id", "owner_id", "check_in", "check_out",
			"guests", "transaction_id", "message", "total_amount", "status").
		Values(b.HouseID, b.RenterID, b.OwnerID, b.CheckIn, b.CheckOut,
			b.Guests, b.TransactionID, b.Message, b.TotalAmount, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.house_id", "h.title", "b.renter_id", "u.name",
		"b.owner_id", "b.check_in", "b.check_out", "b.guests",
		"b.transaction_id", "b.message", "b.total_amount", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.houses h ON b.house_id = h.id").
		Join("public.users u ON b.renter_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.HouseID, &b.HouseTitle, &b.RenterID, &b.RenterName,
		&b.OwnerID, &b.CheckIn, &b.CheckOut, &b.Guests,
		&b.TransactionID, &b.Message, &b.TotalAmount, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.house_id", "h.title", "b.renter_id", "u.name",
		"b.owner_id", "b.check_in", "b.check_out", "b.guests",
		"b.transaction_id", "b.message", "b.total_amount", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.houses h ON b.house_id = h.id").
		Join("public.users u ON b.renter_id = u.id").
		OrderBy("b.created_at DESC")

	if filter.RenterID != "" {
		query = query.Where(squirrel.Eq{"b.renter_id": filter.RenterID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"b.owner_id": filter.OwnerID})
	}
	if filter.HouseID != "" {
		query = query.Where(squirrel.Eq{"b.house_id": filter.HouseID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.HouseID, &b.HouseTitle, &b.RenterID, &b.RenterName,
			&b.OwnerID, &b.CheckIn, &b.CheckOut, &b.Guests,
			&b.TransactionID, &b.Message, &b.TotalAmount, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, houseID string, checkIn, checkOut time.Time, excludeID string, statuses []Status) (bool, error) {
	// Half-open intervals [check_in, check_out) conflict iff
	// existing.check_in < checkOut AND existing.check_out > checkIn.
	// Rejected bookings never block dates.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"house_id": houseID}).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ConflictingHouseIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
	const query = `
		SELECT DISTINCT house_id
		FROM public.bookings
		WHERE status IN ('pending', 'approved')
		  AND check_in < $1
		  AND check_out > $2
	`
	rows, err := r.pool.Query(ctx, query, checkOut, checkIn)
	if err != nil {
		return nil, fmt.Errorf("list conflicting houses failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan conflicting house id failed: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conflicting house ids failed: %w", err)
	}
	return ids, nil
}

func (r *pgxRepository) HasApprovedFutureBookings(ctx context.Context, houseID string, from time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE house_id = $1 AND status = 'approved' AND check_out > $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, houseID, from).Scan(&exists); err != nil {
		return false, fmt.Errorf("check approved future bookings failed: %w", err)
	}
	return exists, nil
}
