package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBlogNotFound is returned when the addressed blog post does not exist
var ErrBlogNotFound = errors.New("blog post not found")

var blogSortColumns = map[string]string{
	"title":       "title",
	"author":      "author",
	"status":      "status",
	"publishedAt": "COALESCE(published_at, to_char(created_at, 'YYYY-MM-DD'))",
	"updatedAt":   "updated_at",
	"createdAt":   "created_at",
}

const blogColumns = `
	id, title, content, excerpt, author, status, tags, published_at, created_at, updated_at`

func scanBlog(scan func(dest ...interface{}) error) (Blog, error) {
	var b Blog
	err := scan(&b.ID, &b.Title, &b.Content, &b.Excerpt, &b.Author,
		&b.Status, &b.Tags, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// BlogRepository handles blog post data access
type BlogRepository struct {
	db *pgxpool.Pool
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create inserts a new blog post
func (r *BlogRepository) Create(ctx context.Context, b *Blog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO blogs (title, content, excerpt, author, status, tags, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		b.Title, b.Content, b.Excerpt, b.Author, b.Status, b.Tags, b.PublishedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func buildBlogFilter(f ListFilter) (string, []interface{}) {
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
	if f.Author != "" {
		args = append(args, "%"+f.Author+"%")
		and(fmt.Sprintf("author ILIKE $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		and(fmt.Sprintf(`(title ILIKE $%d OR excerpt ILIKE $%d OR content ILIKE $%d
			OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE $%d))`, n, n, n, n))
	}
	return where, args
}

// List returns a filtered, sorted page of blog posts with the filtered total
func (r *BlogRepository) List(ctx context.Context, f ListFilter) ([]Blog, int64, error) {
	where, args := buildBlogFilter(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := blogSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM blogs%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		blogColumns, where, sortCol, direction, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		b, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

// StatusCounts tallies all blog posts by status
func (r *BlogRepository) StatusCounts(ctx context.Context) (BlogStatusCounts, error) {
	var counts BlogStatusCounts
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'published'),
		       COUNT(*) FILTER (WHERE status = 'draft')
		FROM blogs`).Scan(&counts.Total, &counts.Published, &counts.Draft)
	return counts, err
}

// GetByID returns a single blog post
func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	b, err := scanBlog(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update replaces the mutable fields of a blog post
func (r *BlogRepository) Update(ctx context.Context, id uuid.UUID, b *Blog) (*Blog, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE blogs
		SET title = $2, content = $3, excerpt = $4, author = $5,
		    status = $6, tags = $7, published_at = $8, updated_at = now()
		WHERE id = $1`,
		id, b.Title, b.Content, b.Excerpt, b.Author, b.Status, b.Tags, b.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBlogNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a blog post
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// UpdateStatus publishes or unpublishes a blog post. The published date is
// stamped on the first publish and kept thereafter.
func (r *BlogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, publishedAt *string) (*Blog, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE blogs
		SET status = $2,
		    published_at = CASE WHEN $2 = 'published' THEN COALESCE(published_at, $3) ELSE published_at END,
		    updated_at = now()
		WHERE id = $1`,
		id, status, publishedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBlogNotFound
	}
	return r.GetByID(ctx, id)
}

// Stats summarizes blog posts for the dashboard
func (r *BlogRepository) Stats(ctx context.Context) (*BlogStats, error) {
	stats := &BlogStats{AuthorStats: map[string]int64{}, MonthlyStats: map[string]int64{}}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'published'),
		       COUNT(*) FILTER (WHERE status = 'draft'),
		       COUNT(*) FILTER (WHERE created_at > now() - interval '7 days')
		FROM blogs`).Scan(&stats.Total, &stats.Published, &stats.Draft, &stats.Recent)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT author, COUNT(*) FROM blogs GROUP BY author`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var author string
		var count int64
		if err := rows.Scan(&author, &count); err != nil {
			return nil, err
		}
		stats.AuthorStats[author] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	monthRows, err := r.db.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM'), COUNT(*)
		FROM blogs
		WHERE created_at > now() - interval '6 months'
		GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var month string
		var count int64
		if err := monthRows.Scan(&month, &count); err != nil {
			return nil, err
		}
		stats.MonthlyStats[month] = count
	}
	return stats, monthRows.Err()
}

// BulkDelete removes the given blog posts and returns the number deleted
func (r *BlogRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BulkUpdateStatus sets the status of the given blog posts and returns them
func (r *BlogRepository) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string, publishedAt *string) ([]Blog, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE blogs
		SET status = $2,
		    published_at = CASE WHEN $2 = 'published' THEN COALESCE(published_at, $3) ELSE published_at END,
		    updated_at = now()
		WHERE id = ANY($1)
		RETURNING `+blogColumns,
		ids, status, publishedAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		b, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// BulkUpdateAuthor reassigns the given blog posts to an author
func (r *BlogRepository) BulkUpdateAuthor(ctx context.Context, ids []uuid.UUID, author string) ([]Blog, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE blogs SET author = $2, updated_at = now()
		WHERE id = ANY($1)
		RETURNING `+blogColumns,
		ids, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		b, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}
