package seo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors of the SEO repository
var (
	ErrNotFound      = errors.New("seo entry not found")
	ErrDuplicatePage = errors.New("seo entry already exists for page")
)

const entryColumns = `
	id, page, title, description, keywords, meta_tags, status, last_updated, created_at, updated_at`

func scanEntry(scan func(dest ...interface{}) error) (Entry, error) {
	var e Entry
	err := scan(&e.ID, &e.Page, &e.Title, &e.Description, &e.Keywords,
		&e.MetaTags, &e.Status, &e.LastUpdated, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Repository handles SEO entry data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new SEO repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new entry. A second entry for the same page yields
// ErrDuplicatePage.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO seo_data (page, title, description, keywords, meta_tags, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, last_updated, created_at, updated_at`,
		e.Page, e.Title, e.Description, e.Keywords, e.MetaTags, e.Status,
	).Scan(&e.ID, &e.LastUpdated, &e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicatePage
	}
	return err
}

// List returns all entries ordered by page name
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+entryColumns+` FROM seo_data ORDER BY page`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByPage returns the entry for a page name
func (r *Repository) GetByPage(ctx context.Context, page string) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM seo_data WHERE page = $1`, page).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID returns a single entry
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM seo_data WHERE id = $1`, id).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the mutable fields of an entry. Renaming onto an existing
// page yields ErrDuplicatePage.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE seo_data
		SET page = $2, title = $3, description = $4, keywords = $5,
		    meta_tags = $6, status = $7, last_updated = now(), updated_at = now()
		WHERE id = $1`,
		id, e.Page, e.Title, e.Description, e.Keywords, e.MetaTags, e.Status,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicatePage
	}
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes an entry
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM seo_data WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus flips an entry between active and inactive and returns the
// updated entry
func (r *Repository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `
			UPDATE seo_data
			SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END,
			    last_updated = now(), updated_at = now()
			WHERE id = $1
			RETURNING `+entryColumns, id).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
