package airport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the addressed service does not exist
var ErrNotFound = errors.New("airport service not found")

// hasAvailableCar filters entries to those with at least one bookable car
const hasAvailableCar = `EXISTS (
	SELECT 1 FROM jsonb_array_elements(cars) AS car
	WHERE (car->>'available')::boolean
)`

const entryColumns = `
	id, COALESCE(airport_city, ''), COALESCE(airport_name, ''), COALESCE(airport_code, ''),
	COALESCE(service_type, ''), COALESCE(other_location, ''),
	date_time, COALESCE(distance, 0), cars, created_at, updated_at`

func scanEntry(scan func(dest ...interface{}) error) (Entry, error) {
	var e Entry
	err := scan(
		&e.ID, &e.AirportCity, &e.AirportName, &e.AirportCode,
		&e.ServiceType, &e.OtherLocation,
		&e.DateTime, &e.Distance, &e.Cars, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Repository handles airport service data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new airport repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new service entry
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO airport_entries (airport_city, airport_name, airport_code, service_type, other_location, date_time, distance, cars)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		e.AirportCity, e.AirportName, e.AirportCode, e.ServiceType, e.OtherLocation, e.DateTime, e.Distance, e.Cars,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// List returns a page of services, newest first, optionally filtered by a
// case-insensitive substring search over city, location and direction.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Entry, int64, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = ` WHERE airport_city ILIKE $1 OR other_location ILIKE $1 OR service_type ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM airport_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM airport_entries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
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

// GetByID returns a single service entry
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx,
			`SELECT `+entryColumns+` FROM airport_entries WHERE id = $1`, id,
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

// Update replaces the mutable fields of a service entry
func (r *Repository) Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE airport_entries
		SET airport_city = $2, airport_name = $3, airport_code = $4, service_type = $5,
		    other_location = $6, date_time = $7, distance = $8, cars = $9, updated_at = now()
		WHERE id = $1`,
		id, e.AirportCity, e.AirportName, e.AirportCode, e.ServiceType,
		e.OtherLocation, e.DateTime, e.Distance, e.Cars,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a service entry
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM airport_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindService resolves the entry for an exact city/location/direction match,
// case-insensitively and ignoring surrounding whitespace.
func (r *Repository) FindService(ctx context.Context, serviceType, airportCity, otherLocation string) (*Entry, error) {
	e, err := scanEntry(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `
			SELECT `+entryColumns+` FROM airport_entries
			WHERE lower(trim(airport_city)) = lower(trim($1))
			  AND lower(trim(other_location)) = lower(trim($2))
			  AND service_type = $3
			LIMIT 1`,
			airportCity, otherLocation, serviceType,
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

// AvailableRoutes returns the (city, location, direction) triples that have at
// least one available car.
func (r *Repository) AvailableRoutes(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(airport_city, ''), COALESCE(other_location, ''), COALESCE(service_type, '')
		FROM airport_entries
		WHERE `+hasAvailableCar+`
		ORDER BY airport_city, other_location`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.AirportCity, &e.OtherLocation, &e.ServiceType); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
