package seo

import (
	"time"

	"github.com/google/uuid"
)

// Entry statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Entry holds the meta tags served for one frontend page. Page names are
// unique, e.g. "home" or "airport-taxi".
type Entry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Page        string    `json:"page" db:"page"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Keywords    string    `json:"keywords" db:"keywords"`
	MetaTags    string    `json:"metaTags" db:"meta_tags"`
	Status      string    `json:"status" db:"status"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UpsertRequest is the body of the create and update endpoints
type UpsertRequest struct {
	Page        string `json:"page"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	MetaTags    string `json:"metaTags"`
	Status      string `json:"status"`
}
