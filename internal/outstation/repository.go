package outstation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the addressed route does not exist
var ErrNotFound = errors.New("outstation route not found")

const hasAvailableCar = `EXISTS (
	SELECT 1 FROM jsonb_array_elements(cars) AS car
	WHERE (car->>'available')::boolean
)`

const entryColumns = `
	id, COALESCE(city1, ''), COALESCE(city2, ''), date_time,
	COALESCE(distance, 0), trip_type, cars, created_at, updated_at`

func scanEntry(scan func(dest ...interface{}) error) (Entry, error) {
	var e Entry
	err := scan(&e.ID, &e.City1, &e.City2, &e.DateTime,
		&e.Distance, &e.TripType, &e.Cars, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Repository handles outstation route data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new outstation repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new route entry
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	if e.TripType == "" {
		e.TripType = TripOneWay
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO outstation_entries (city1, city2, date_time, distance, trip_type, cars)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		e.City1, e.City2, e.DateTime, e.Distance, e.TripType, e.Cars,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// List returns a page of routes, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Entry, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM outstation_entries`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+entryColumns+` FROM outstation_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
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

// GetByID returns a single route
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx,
			`SELECT `+entryColumns+` FROM outstation_entries WHERE id = $1`, id,
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

// Update replaces the mutable fields of a route
func (r *Repository) Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE outstation_entries
		SET city1 = $2, city2 = $3, date_time = $4, distance = $5, trip_type = $6, cars = $7, updated_at = now()
		WHERE id = $1`,
		id, e.City1, e.City2, e.DateTime, e.Distance, e.TripType, e.Cars,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a route
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM outstation_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindRoute resolves the entry for an exact origin/destination/trip-type
// match, case-insensitively on cities.
func (r *Repository) FindRoute(ctx context.Context, city1, city2, tripType string) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `
			SELECT `+entryColumns+` FROM outstation_entries
			WHERE lower(trim(city1)) = lower(trim($1))
			  AND lower(trim(city2)) = lower(trim($2))
			  AND trip_type = $3
			LIMIT 1`,
			city1, city2, tripType,
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

// AvailableCityPairs returns the (origin, destination) pairs with at least
// one available car.
func (r *Repository) AvailableCityPairs(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(city1, ''), COALESCE(city2, '')
		FROM outstation_entries
		WHERE `+hasAvailableCar+`
		ORDER BY city1, city2`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.City1, &e.City2); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
