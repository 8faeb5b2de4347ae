package house

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, h *House) error
	GetByID(ctx context.Context, id string) (*House, error)
	ListByStatus(ctx context.Context, status Status) ([]*House, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*House, error)
	ListApprovedExcluding(ctx context.Context, excludeIDs []string) ([]*House, error)
	Update(ctx context.Context, h *House) error

	// Delete removes the house together with its remaining bookings in
	// one transaction. The service refuses deletion while approved
	// future bookings exist; anything still referencing the house at
	// this point is history of a removed listing.
	Delete(ctx context.Context, id string) error
}

const houseColumns = `
	id, owner_id, owner_name, title, address, phone, price, rooms, guests,
	college, distance, amenities, categories, gender_preference, drive_link,
	qr_code_file_id, image_file_ids, status, approved_by, approved_at,
	created_at, updated_at
`

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, h *House) error {
	const query = `
		INSERT INTO public.houses (
			owner_id, owner_name, title, address, phone, price, rooms, guests,
			college, distance, amenities, categories, gender_preference,
			drive_link, qr_code_file_id, image_file_ids, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		h.OwnerID, h.OwnerName, h.Title, h.Address, h.Phone, h.Price,
		h.Rooms, h.Guests, h.College, h.Distance, h.Amenities, h.Categories,
		h.GenderPreference, h.DriveLink, h.QRCodeFileID, h.ImageFileIDs,
		h.Status,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create house failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*House, error) {
	query := `SELECT ` + houseColumns + ` FROM public.houses WHERE id = $1`

	h, err := scanHouse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get house failed: %w", err)
	}
	return h, nil
}

func (r *pgxRepository) ListByStatus(ctx context.Context, status Status) ([]*House, error) {
	query := `SELECT ` + houseColumns + ` FROM public.houses WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list houses by status failed: %w", err)
	}
	defer rows.Close()

	return collectHouses(rows)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*House, error) {
	query := `SELECT ` + houseColumns + ` FROM public.houses WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list houses by owner failed: %w", err)
	}
	defer rows.Close()

	return collectHouses(rows)
}

func (r *pgxRepository) ListApprovedExcluding(ctx context.Context, excludeIDs []string) ([]*House, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(houseColumns).
		From("public.houses").
		Where(squirrel.Eq{"status": StatusApproved}).
		OrderBy("created_at DESC")

	if len(excludeIDs) > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookable houses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookable houses failed: %w", err)
	}
	defer rows.Close()

	return collectHouses(rows)
}

func (r *pgxRepository) Update(ctx context.Context, h *House) error {
	const query = `
		UPDATE public.houses
		SET title = $1, address = $2, phone = $3, price = $4, rooms = $5,
			guests = $6, college = $7, distance = $8, amenities = $9,
			categories = $10, gender_preference = $11, drive_link = $12,
			qr_code_file_id = $13, image_file_ids = $14, status = $15,
			approved_by = $16, approved_at = $17, updated_at = now()
		WHERE id = $18
	`
	ct, err := r.pool.Exec(ctx, query,
		h.Title, h.Address, h.Phone, h.Price, h.Rooms, h.Guests,
		h.College, h.Distance, h.Amenities, h.Categories,
		h.GenderPreference, h.DriveLink, h.QRCodeFileID, h.ImageFileIDs,
		h.Status, h.ApprovedBy, h.ApprovedAt, h.ID,
	)
	if err != nil {
		return fmt.Errorf("update house failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete house tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM public.bookings WHERE house_id = $1`, id); err != nil {
		return fmt.Errorf("delete house bookings failed: %w", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM public.houses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete house failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanHouse(row pgx.Row) (*House, error) {
	var h House
	err := row.Scan(
		&h.ID, &h.OwnerID, &h.OwnerName, &h.Title, &h.Address, &h.Phone,
		&h.Price, &h.Rooms, &h.Guests, &h.College, &h.Distance,
		&h.Amenities, &h.Categories, &h.GenderPreference, &h.DriveLink,
		&h.QRCodeFileID, &h.ImageFileIDs, &h.Status, &h.ApprovedBy,
		&h.ApprovedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func collectHouses(rows pgx.Rows) ([]*House, error) {
	var houses []*House
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan house failed: %w", err)
		}
		houses = append(houses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate houses failed: %w", err)
	}
	return houses, nil
}
