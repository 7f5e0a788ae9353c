package seo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/logger"
)

// Handler handles HTTP requests for SEO entries
type Handler struct {
	repo *Repository
}

// NewHandler creates a new SEO handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns every SEO entry, ordered by page name
// GET /seo
func (h *Handler) List(c *gin.Context) {
	entries, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Error fetching SEO data")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

// GetByPage returns the entry serving a page name
// GET /seo/page/:page
func (h *Handler) GetByPage(c *gin.Context) {
	entry, err := h.repo.GetByPage(c.Request.Context(), c.Param("page"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "SEO data not found for this page"})
		return
	}
	if err != nil {
		h.fail(c, err, "Error fetching SEO data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// Create adds a new SEO entry
// POST /admin/seo
func (h *Handler) Create(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Page == "" || req.Title == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Page, title, and description are required"})
		return
	}

	entry := &Entry{
		Page:        req.Page,
		Title:       req.Title,
		Description: req.Description,
		Keywords:    req.Keywords,
		MetaTags:    req.MetaTags,
		Status:      req.Status,
	}
	if entry.Status == "" {
		entry.Status = StatusActive
	}

	err := h.repo.Create(c.Request.Context(), entry)
	if errors.Is(err, ErrDuplicatePage) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "SEO data already exists for this page"})
		return
	}
	if err != nil {
		h.fail(c, err, "Error creating SEO data")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "SEO data created successfully", "data": entry})
}

// Update merges the submitted fields into an existing entry
// PUT /admin/seo/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	current, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Error updating SEO data")
		return
	}

	if req.Page != "" {
		current.Page = req.Page
	}
	if req.Title != "" {
		current.Title = req.Title
	}
	if req.Description != "" {
		current.Description = req.Description
	}
	if req.Keywords != "" {
		current.Keywords = req.Keywords
	}
	if req.MetaTags != "" {
		current.MetaTags = req.MetaTags
	}
	if req.Status != "" {
		current.Status = req.Status
	}

	updated, err := h.repo.Update(c.Request.Context(), id, current)
	if errors.Is(err, ErrDuplicatePage) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "SEO data already exists for this page"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Error updating SEO data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "SEO data updated successfully", "data": updated})
}

// Delete removes an entry
// DELETE /admin/seo/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Error deleting SEO data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "SEO data deleted successfully"})
}

// ToggleStatus flips an entry between active and inactive
// PATCH /admin/seo/:id/toggle
func (h *Handler) ToggleStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	entry, err := h.repo.ToggleStatus(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Error toggling SEO status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "SEO data " + entry.Status + " successfully", "data": entry})
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "SEO data not found"})
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	logger.WithContext(c.Request.Context()).Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

// RegisterRoutes registers the public and admin SEO endpoints
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/seo", h.List)
	r.GET("/seo/page/:page", h.GetByPage)
	r.POST("/admin/seo", h.Create)
	r.PUT("/admin/seo/:id", h.Update)
	r.DELETE("/admin/seo/:id", h.Delete)
	r.PATCH("/admin/seo/:id/toggle", h.ToggleStatus)
}
