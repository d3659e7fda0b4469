package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const uniqueViolationCode = "23505"

// Repository provides access to document metadata storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new document repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts metadata for a new document.
func (r *Repository) Create(ctx context.Context, rec Record) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO documents (id, original_name, stored_name, size_bytes, content_type, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, original_name, stored_name, size_bytes, content_type, uploaded_at;`

	row := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.OriginalName,
		rec.StoredName,
		rec.SizeBytes,
		rec.ContentType,
		rec.UploadedAt,
	)

	var stored Record
	if err := row.Scan(&stored.ID, &stored.OriginalName, &stored.StoredName, &stored.SizeBytes, &stored.ContentType, &stored.UploadedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Record{}, ErrDuplicateID
		}
		return Record{}, fmt.Errorf("create document metadata: %w", err)
	}
	return stored, nil
}

// List returns every document, newest first.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, original_name, stored_name, size_bytes, content_type, uploaded_at
FROM documents
ORDER BY uploaded_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OriginalName, &rec.StoredName, &rec.SizeBytes, &rec.ContentType, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document metadata: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return records, nil
}

// GetByID fetches metadata for a single document.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, original_name, stored_name, size_bytes, content_type, uploaded_at
FROM documents
WHERE id = $1;`

	var rec Record
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.OriginalName,
		&rec.StoredName,
		&rec.SizeBytes,
		&rec.ContentType,
		&rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get document metadata: %w", err)
	}
	return rec, nil
}

// Delete removes the row for id. A missing row is not an error at this layer;
// callers check existence first.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM documents WHERE id = $1;`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}
	return nil
}
