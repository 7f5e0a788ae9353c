package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPage is the first page
	DefaultPage = 1
	// DefaultLimit is used when no limit query parameter is supplied
	DefaultLimit = 10
	// MaxLimit caps the page size
	MaxLimit = 100
)

// Params holds parsed page/limit query parameters
type Params struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseParams parses ?page= and ?limit= with defaults and bounds
func ParseParams(c *gin.Context) Params {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			params.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > MaxLimit {
				limit = MaxLimit
			}
			params.Limit = limit
		}
	}

	return params
}

// Meta describes a page of results
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// TotalPages returns the number of pages needed for total items
func TotalPages(limit int, total int64) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// BuildMeta builds pagination metadata for a page of results
func BuildMeta(page, limit int, total int64) *Meta {
	totalPages := TotalPages(limit, total)
	return &Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
