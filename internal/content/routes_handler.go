package content

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/logger"
	"github.com/richxcame/cab-booking/pkg/pagination"
)

// RouteHandler handles HTTP requests for route content pages
type RouteHandler struct {
	repo *RouteRepository
	now  func() time.Time
}

// NewRouteHandler creates a new route content handler
func NewRouteHandler(repo *RouteRepository) *RouteHandler {
	return &RouteHandler{repo: repo, now: time.Now}
}

// parseListFilter reads the shared listing query parameters
func parseListFilter(c *gin.Context) ListFilter {
	params := pagination.ParseParams(c)
	return ListFilter{
		Status:    c.DefaultQuery("status", "all"),
		Search:    c.Query("search"),
		Author:    c.Query("author"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Limit:     params.Limit,
		Offset:    params.Offset(),
	}
}

// listPagination builds the enhanced pagination block of the admin listings
func listPagination(f ListFilter, total int64, returned int) gin.H {
	page := f.Offset/f.Limit + 1
	totalPages := pagination.TotalPages(f.Limit, total)
	hasNext := page < totalPages
	hasPrev := page > 1

	var nextPage, prevPage interface{}
	if hasNext {
		nextPage = page + 1
	}
	if hasPrev {
		prevPage = page - 1
	}

	return gin.H{
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"limit":       f.Limit,
		"hasNextPage": hasNext,
		"hasPrevPage": hasPrev,
		"nextPage":    nextPage,
		"prevPage":    prevPage,
		"startIndex":  f.Offset + 1,
		"endIndex":    f.Offset + returned,
	}
}

// List returns a filtered, sorted page of routes with status counts
// GET /routes
func (h *RouteHandler) List(c *gin.Context) {
	f := parseListFilter(c)

	routes, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "Failed to fetch routes")
		return
	}
	counts, err := h.repo.StatusCounts(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch routes")
		return
	}
	if routes == nil {
		routes = []Route{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       routes,
		"pagination": listPagination(f, total, len(routes)),
		"statusCounts": gin.H{
			"total":    counts.Total,
			"active":   counts.Active,
			"inactive": counts.Inactive,
		},
		"filters": gin.H{
			"status":    f.Status,
			"search":    f.Search,
			"sortBy":    f.SortBy,
			"sortOrder": f.SortOrder,
		},
	})
}

// Get returns one route
// GET /routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	route, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrRouteNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to fetch route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": route})
}

// Create adds a new route
// POST /routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Route name, from, and to are required"})
		return
	}
	if req.RouteName == "" || req.From == "" || req.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Route name, from, and to are required"})
		return
	}

	route := &Route{
		RouteName:      req.RouteName,
		From:           req.From,
		To:             req.To,
		Description:    req.Description,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		SEOKeywords:    orEmpty(req.SEOKeywords),
		Status:         defaultString(req.Status, RouteStatusActive),
		Tags:           orEmpty(req.Tags),
		LastBooking:    h.now().Format("2006-01-02"),
	}

	if err := h.repo.Create(c.Request.Context(), route); err != nil {
		h.fail(c, err, "Failed to create route")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Route created successfully", "data": route})
}

// Update merges the submitted fields into an existing route
// PUT /routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	current, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrRouteNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to update route")
		return
	}

	// Empty fields keep their current values
	current.RouteName = defaultString(req.RouteName, current.RouteName)
	current.From = defaultString(req.From, current.From)
	current.To = defaultString(req.To, current.To)
	current.Description = defaultString(req.Description, current.Description)
	current.SEOTitle = defaultString(req.SEOTitle, current.SEOTitle)
	current.SEODescription = defaultString(req.SEODescription, current.SEODescription)
	if req.SEOKeywords != nil {
		current.SEOKeywords = req.SEOKeywords
	}
	current.Status = defaultString(req.Status, current.Status)
	if req.Tags != nil {
		current.Tags = req.Tags
	}

	updated, err := h.repo.Update(c.Request.Context(), id, current)
	if err != nil {
		h.fail(c, err, "Failed to update route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Route updated successfully", "data": updated})
}

// Delete removes a route
// DELETE /routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrRouteNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to delete route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Route deleted successfully"})
}

// UpdateStatus toggles a route between active and inactive
// PATCH /routes/:id/status
func (h *RouteHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Status != RouteStatusActive && req.Status != RouteStatusInactive) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be active or inactive"})
		return
	}

	route, err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, ErrRouteNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to update route status")
		return
	}

	verb := "deactivated"
	if req.Status == RouteStatusActive {
		verb = "activated"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Route " + verb + " successfully", "data": route})
}

// Stats returns the route dashboard summary
// GET /routes/stats/summary
func (h *RouteHandler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch route statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// Bulk performs a delete or status update over a set of routes
// POST /routes/bulk
func (h *RouteHandler) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Operation == "" || len(req.RouteIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Operation and routeIds array are required"})
		return
	}

	switch req.Operation {
	case "delete":
		deleted, err := h.repo.BulkDelete(c.Request.Context(), req.RouteIDs)
		if err != nil {
			h.fail(c, err, "Failed to perform bulk operation")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Bulk delete operation completed successfully",
			"data":    gin.H{"processedCount": len(req.RouteIDs), "deletedCount": deleted},
		})

	case "updateStatus":
		if req.Data == nil || req.Data.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required for updateStatus operation"})
			return
		}
		updated, err := h.repo.BulkUpdateStatus(c.Request.Context(), req.RouteIDs, req.Data.Status)
		if err != nil {
			h.fail(c, err, "Failed to perform bulk operation")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Bulk updateStatus operation completed successfully",
			"data":    gin.H{"processedCount": len(req.RouteIDs), "updatedRoutes": updated},
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid operation. Supported operations: delete, updateStatus"})
	}
}

func (h *RouteHandler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
}

func (h *RouteHandler) fail(c *gin.Context, err error, message string) {
	logger.WithContext(c.Request.Context()).Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

func defaultString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// RegisterRoutes registers route content endpoints
func (h *RouteHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/routes", h.List)
	r.GET("/routes/stats/summary", h.Stats)
	r.GET("/routes/:id", h.Get)
	r.POST("/routes", h.Create)
	r.POST("/routes/bulk", h.Bulk)
	r.PUT("/routes/:id", h.Update)
	r.DELETE("/routes/:id", h.Delete)
	r.PATCH("/routes/:id/status", h.UpdateStatus)
}
