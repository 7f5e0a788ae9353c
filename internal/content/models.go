package content

import (
	"time"

	"github.com/google/uuid"
)

// Route statuses
const (
	RouteStatusActive   = "active"
	RouteStatusInactive = "inactive"
)

// Blog statuses
const (
	BlogStatusPublished = "published"
	BlogStatusDraft     = "draft"
)

// Route is a marketed intercity/airport/local route page with its SEO fields
type Route struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RouteName      string    `json:"routeName" db:"route_name"`
	From           string    `json:"from" db:"from_city"`
	To             string    `json:"to" db:"to_city"`
	Description    string    `json:"description" db:"description"`
	SEOTitle       string    `json:"seoTitle" db:"seo_title"`
	SEODescription string    `json:"seoDescription" db:"seo_description"`
	SEOKeywords    []string  `json:"seoKeywords" db:"seo_keywords"`
	Status         string    `json:"status" db:"status"`
	Tags           []string  `json:"tags" db:"tags"`
	LastBooking    string    `json:"lastBooking" db:"last_booking"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Blog is one blog post
type Blog struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Author      string    `json:"author" db:"author"`
	Status      string    `json:"status" db:"status"`
	Tags        []string  `json:"tags" db:"tags"`
	PublishedAt *string   `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ListFilter is the shared filter set of the admin listings
type ListFilter struct {
	Status    string
	Search    string
	Author    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// StatusCounts is the per-status tally shown next to every listing page
type StatusCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active,omitempty"`
	Inactive int64 `json:"inactive,omitempty"`
}

// BlogStatusCounts is the blog listing's per-status tally
type BlogStatusCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
}

// RouteStats is the route dashboard summary
type RouteStats struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Inactive     int64            `json:"inactive"`
	Recent       int64            `json:"recent"`
	MonthlyStats map[string]int64 `json:"monthlyStats"`
}

// BlogStats is the blog dashboard summary
type BlogStats struct {
	Total        int64            `json:"total"`
	Published    int64            `json:"published"`
	Draft        int64            `json:"draft"`
	Recent       int64            `json:"recent"`
	AuthorStats  map[string]int64 `json:"authorStats"`
	MonthlyStats map[string]int64 `json:"monthlyStats"`
}

// CreateRouteRequest is the body of POST /routes
type CreateRouteRequest struct {
	RouteName      string   `json:"routeName"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Description    string   `json:"description"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	SEOKeywords    []string `json:"seoKeywords"`
	Status         string   `json:"status"`
	Tags           []string `json:"tags"`
}

// CreateBlogRequest is the body of POST /blogs
type CreateBlogRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt"`
	Author  string   `json:"author"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// UpdateStatusRequest is the body of the status toggle endpoints
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BulkRequest is the body of the bulk operation endpoints
type BulkRequest struct {
	Operation string      `json:"operation"`
	RouteIDs  []uuid.UUID `json:"routeIds"`
	BlogIDs   []uuid.UUID `json:"blogIds"`
	Data      *BulkData   `json:"data"`
}

// BulkData carries the per-operation payload of a bulk request
type BulkData struct {
	Status string `json:"status"`
	Author string `json:"author"`
}
