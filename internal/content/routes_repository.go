package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRouteNotFound is returned when the addressed route does not exist
var ErrRouteNotFound = errors.New("route not found")

// routeSortColumns whitelists the client-selectable sort keys
var routeSortColumns = map[string]string{
	"routeName":   "route_name",
	"from":        "from_city",
	"to":          "to_city",
	"status":      "status",
	"lastBooking": "last_booking",
	"updatedAt":   "updated_at",
	"createdAt":   "created_at",
}

const routeColumns = `
	id, route_name, from_city, to_city, description,
	seo_title, seo_description, seo_keywords, status, tags,
	last_booking, created_at, updated_at`

func scanRoute(scan func(dest ...interface{}) error) (Route, error) {
	var r Route
	err := scan(
		&r.ID, &r.RouteName, &r.From, &r.To, &r.Description,
		&r.SEOTitle, &r.SEODescription, &r.SEOKeywords, &r.Status, &r.Tags,
		&r.LastBooking, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// RouteRepository handles route content data access
type RouteRepository struct {
	db *pgxpool.Pool
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new route
func (r *RouteRepository) Create(ctx context.Context, route *Route) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO routes (route_name, from_city, to_city, description, seo_title, seo_description, seo_keywords, status, tags, last_booking)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		route.RouteName, route.From, route.To, route.Description,
		route.SEOTitle, route.SEODescription, route.SEOKeywords,
		route.Status, route.Tags, route.LastBooking,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
}

// buildRouteFilter returns the WHERE clause and args for a listing filter
func buildRouteFilter(f ListFilter) (string, []interface{}) {
	where := ""
	args := []interface{}{}
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		and(fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		and(fmt.Sprintf(`(route_name ILIKE $%d OR from_city ILIKE $%d OR to_city ILIKE $%d OR description ILIKE $%d
			OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE $%d))`, n, n, n, n, n))
	}
	return where, args
}

// List returns a filtered, sorted page of routes with the filtered total
func (r *RouteRepository) List(ctx context.Context, f ListFilter) ([]Route, int64, error) {
	where, args := buildRouteFilter(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM routes`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := routeSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM routes%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		routeColumns, where, sortCol, direction, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		route, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		routes = append(routes, route)
	}
	return routes, total, rows.Err()
}

// StatusCounts tallies all routes by status, unaffected by listing filters
func (r *RouteRepository) StatusCounts(ctx context.Context) (StatusCounts, error) {
	var counts StatusCounts
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'inactive')
		FROM routes`).Scan(&counts.Total, &counts.Active, &counts.Inactive)
	return counts, err
}

// GetByID returns a single route
func (r *RouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Route, error) {
	route, err := scanRoute(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// Update replaces the mutable fields of a route
func (r *RouteRepository) Update(ctx context.Context, id uuid.UUID, route *Route) (*Route, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE routes
		SET route_name = $2, from_city = $3, to_city = $4, description = $5,
		    seo_title = $6, seo_description = $7, seo_keywords = $8,
		    status = $9, tags = $10, updated_at = now()
		WHERE id = $1`,
		id, route.RouteName, route.From, route.To, route.Description,
		route.SEOTitle, route.SEODescription, route.SEOKeywords,
		route.Status, route.Tags,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrRouteNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a route
func (r *RouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

// UpdateStatus toggles a route between active and inactive
func (r *RouteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Route, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE routes SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrRouteNotFound
	}
	return r.GetByID(ctx, id)
}

// Stats summarizes routes for the dashboard: totals, last-7-days count and a
// per-month creation tally over the last six months.
func (r *RouteRepository) Stats(ctx context.Context) (*RouteStats, error) {
	stats := &RouteStats{MonthlyStats: map[string]int64{}}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'inactive'),
		       COUNT(*) FILTER (WHERE created_at > now() - interval '7 days')
		FROM routes`).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.Recent)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM'), COUNT(*)
		FROM routes
		WHERE created_at > now() - interval '6 months'
		GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var month string
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		stats.MonthlyStats[month] = count
	}
	return stats, rows.Err()
}

// BulkDelete removes the given routes and returns the number deleted
func (r *RouteRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BulkUpdateStatus sets the status of the given routes and returns them
func (r *RouteRepository) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) ([]Route, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE routes SET status = $2, updated_at = now()
		WHERE id = ANY($1)
		RETURNING `+routeColumns,
		ids, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		route, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}
