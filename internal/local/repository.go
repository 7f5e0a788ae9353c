package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the addressed ride entry does not exist
var ErrNotFound = errors.New("local ride service not found")

const hasAvailableCar = `EXISTS (
	SELECT 1 FROM jsonb_array_elements(cars) AS car
	WHERE (car->>'available')::boolean
)`

const entryColumns = `
	id, COALESCE(city, ''), COALESCE(package, ''), date_time, cars, created_at, updated_at`

func scanEntry(scan func(dest ...interface{}) error) (Entry, error) {
	var e Entry
	err := scan(&e.ID, &e.City, &e.Package, &e.DateTime, &e.Cars, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Repository handles local ride data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new local ride repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateBulk inserts the given entries in one transaction; either all
// packages for a city land or none do.
func (r *Repository) CreateBulk(ctx context.Context, entries []Entry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range entries {
		e := &entries[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO local_ride_entries (city, package, date_time, cars)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			e.City, e.Package, e.DateTime, e.Cars,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// List returns a page of ride entries, newest first, optionally filtered by a
// case-insensitive substring search over city and package.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Entry, int64, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = ` WHERE city ILIKE $1 OR package ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM local_ride_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM local_ride_entries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// GetByID returns a single ride entry
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx,
			`SELECT `+entryColumns+` FROM local_ride_entries WHERE id = $1`, id,
		).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the mutable fields of a ride entry
func (r *Repository) Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE local_ride_entries
		SET city = $2, package = $3, date_time = $4, cars = $5, updated_at = now()
		WHERE id = $1`,
		id, e.City, e.Package, e.DateTime, e.Cars,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a ride entry
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM local_ride_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindRide resolves the entry for an exact city/package match,
// case-insensitively on city.
func (r *Repository) FindRide(ctx context.Context, city, ridePackage string) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `
			SELECT `+entryColumns+` FROM local_ride_entries
			WHERE lower(trim(city)) = lower(trim($1)) AND package = $2
			LIMIT 1`,
			city, ridePackage,
		).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AvailableCities returns the distinct cities with at least one available car
func (r *Repository) AvailableCities(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT COALESCE(city, '') FROM local_ride_entries
		WHERE `+hasAvailableCar+`
		ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
