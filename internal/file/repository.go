package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *File) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.files").
		Columns("id", "owner_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		Values(f.ID, f.OwnerID, f.Filename, f.StoragePath, f.ThumbnailPath, f.ContentType, f.Size, f.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create file query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create file record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*File, error) {
	const query = `
		SELECT id, owner_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.files
		WHERE id = $1
	`
	var f File
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.OwnerID, &f.Filename, &f.StoragePath, &f.ThumbnailPath,
		&f.ContentType, &f.Size, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get file failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.files WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
