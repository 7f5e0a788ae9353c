package content

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/logger"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// autoExcerpt derives a plain-text excerpt from HTML content
func autoExcerpt(content string) string {
	plain := strings.TrimSpace(htmlTagPattern.ReplaceAllString(content, ""))
	if len(plain) > 150 {
		plain = plain[:150]
	}
	return plain + "..."
}

// BlogHandler handles HTTP requests for blog posts
type BlogHandler struct {
	repo *BlogRepository
	now  func() time.Time
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(repo *BlogRepository) *BlogHandler {
	return &BlogHandler{repo: repo, now: time.Now}
}

// List returns a filtered, sorted page of blog posts with status counts
// GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	f := parseListFilter(c)

	blogs, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "Failed to fetch blogs")
		return
	}
	counts, err := h.repo.StatusCounts(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch blogs")
		return
	}
	if blogs == nil {
		blogs = []Blog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         blogs,
		"pagination":   listPagination(f, total, len(blogs)),
		"statusCounts": counts,
		"filters": gin.H{
			"status":    f.Status,
			"search":    f.Search,
			"author":    f.Author,
			"sortBy":    f.SortBy,
			"sortOrder": f.SortOrder,
		},
	})
}

// Get returns one blog post
// GET /blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	blog, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to fetch blog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

// Create adds a new blog post. A missing excerpt is derived from the content.
// POST /blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and content are required"})
		return
	}
	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and content are required"})
		return
	}

	blog := &Blog{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: defaultString(req.Excerpt, autoExcerpt(req.Content)),
		Author:  defaultString(req.Author, "Admin"),
		Status:  defaultString(req.Status, BlogStatusDraft),
		Tags:    orEmpty(req.Tags),
	}
	if blog.Status == BlogStatusPublished {
		published := h.now().Format("2006-01-02")
		blog.PublishedAt = &published
	}

	if err := h.repo.Create(c.Request.Context(), blog); err != nil {
		h.fail(c, err, "Failed to create blog post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Blog post created successfully", "data": blog})
}

// Update merges the submitted fields into an existing blog post
// PUT /blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	current, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to update blog post")
		return
	}

	// First publish stamps the published date; later edits keep it
	if req.Status == BlogStatusPublished && current.Status != BlogStatusPublished {
		published := h.now().Format("2006-01-02")
		current.PublishedAt = &published
	}

	current.Title = defaultString(req.Title, current.Title)
	current.Content = defaultString(req.Content, current.Content)
	current.Excerpt = defaultString(req.Excerpt, current.Excerpt)
	current.Author = defaultString(req.Author, current.Author)
	current.Status = defaultString(req.Status, current.Status)
	if req.Tags != nil {
		current.Tags = req.Tags
	}

	updated, err := h.repo.Update(c.Request.Context(), id, current)
	if err != nil {
		h.fail(c, err, "Failed to update blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post updated successfully", "data": updated})
}

// Delete removes a blog post
// DELETE /blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to delete blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted successfully"})
}

// UpdateStatus publishes or unpublishes a blog post
// PATCH /blogs/:id/status
func (h *BlogHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Status != BlogStatusPublished && req.Status != BlogStatusDraft) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be published or draft"})
		return
	}

	published := h.now().Format("2006-01-02")
	blog, err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status, &published)
	if errors.Is(err, ErrBlogNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to update blog status")
		return
	}

	verb := "unpublished"
	if req.Status == BlogStatusPublished {
		verb = "published"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post " + verb + " successfully", "data": blog})
}

// Stats returns the blog dashboard summary
// GET /blogs/stats/summary
func (h *BlogHandler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch blog statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// Bulk performs a delete, status update or author update over a set of posts
// POST /blogs/bulk
func (h *BlogHandler) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Operation == "" || len(req.BlogIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Operation and blogIds array are required"})
		return
	}

	switch req.Operation {
	case "delete":
		deleted, err := h.repo.BulkDelete(c.Request.Context(), req.BlogIDs)
		if err != nil {
			h.fail(c, err, "Failed to perform bulk operation")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Bulk delete operation completed successfully",
			"data":    gin.H{"processedCount": len(req.BlogIDs), "deletedCount": deleted},
		})

	case "updateStatus":
		if req.Data == nil || req.Data.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required for updateStatus operation"})
			return
		}
		published := h.now().Format("2006-01-02")
		updated, err := h.repo.BulkUpdateStatus(c.Request.Context(), req.BlogIDs, req.Data.Status, &published)
		if err != nil {
			h.fail(c, err, "Failed to perform bulk operation")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Bulk updateStatus operation completed successfully",
			"data":    gin.H{"processedCount": len(req.BlogIDs), "updatedBlogs": updated},
		})

	case "updateAuthor":
		if req.Data == nil || req.Data.Author == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Author is required for updateAuthor operation"})
			return
		}
		updated, err := h.repo.BulkUpdateAuthor(c.Request.Context(), req.BlogIDs, req.Data.Author)
		if err != nil {
			h.fail(c, err, "Failed to perform bulk operation")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Bulk updateAuthor operation completed successfully",
			"data":    gin.H{"processedCount": len(req.BlogIDs), "updatedBlogs": updated},
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid operation. Supported operations: delete, updateStatus, updateAuthor"})
	}
}

func (h *BlogHandler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blog post not found"})
}

func (h *BlogHandler) fail(c *gin.Context, err error, message string) {
	logger.WithContext(c.Request.Context()).Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

// RegisterRoutes registers blog endpoints
func (h *BlogHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/blogs", h.List)
	r.GET("/blogs/stats/summary", h.Stats)
	r.GET("/blogs/:id", h.Get)
	r.POST("/blogs", h.Create)
	r.POST("/blogs/bulk", h.Bulk)
	r.PUT("/blogs/:id", h.Update)
	r.DELETE("/blogs/:id", h.Delete)
	r.PATCH("/blogs/:id/status", h.UpdateStatus)
}
