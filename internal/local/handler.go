package local

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/internal/notifications"
	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/logger"
	"github.com/richxcame/cab-booking/pkg/pagination"
)

const (
	availableCitiesCacheKey = "cache:available-cities"
	availabilityCacheTTL    = 5 * time.Minute

	// Every city ships with exactly these hourly packages
	requiredPackageCount = 4
)

// Handler handles HTTP requests for local ride services
type Handler struct {
	repo   RepositoryInterface
	cache  CacheInterface
	mailer MailerInterface
}

// NewHandler creates a new local ride handler
func NewHandler(repo RepositoryInterface, cache CacheInterface, mailer MailerInterface) *Handler {
	return &Handler{repo: repo, cache: cache, mailer: mailer}
}

// CreateBulk onboards a city with all four hourly packages at once
// POST /add-local-bulk
func (h *Handler) CreateBulk(c *gin.Context) {
	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Entries) != requiredPackageCount {
		common.ErrorResponse(c, http.StatusBadRequest, "Expected 4 entries for 4 packages")
		return
	}

	if err := h.repo.CreateBulk(c.Request.Context(), req.Entries); err != nil {
		logger.WithContext(c.Request.Context()).Error("Local bulk create failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidateAvailability(c)
	c.JSON(http.StatusCreated, gin.H{"message": "All packages saved"})
}

// List returns a page of ride entries with optional search
// GET /api/local-services
func (h *Handler) List(c *gin.Context) {
	params := pagination.ParseParams(c)

	entries, total, err := h.repo.List(c.Request.Context(), c.Query("search"), params.Limit, params.Offset())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Limit, total)
	c.JSON(http.StatusOK, gin.H{
		"services": entries,
		"pagination": gin.H{
			"currentPage":   meta.CurrentPage,
			"totalPages":    meta.TotalPages,
			"totalServices": meta.Total,
			"hasNext":       meta.HasNext,
			"hasPrev":       meta.HasPrev,
		},
	})
}

// Get returns one ride entry
// GET /api/local-services/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	entry, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Update replaces a ride entry
// PUT /api/local-services/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var entry Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, &entry)
	if err != nil {
		h.respondRepoError(c, err)
		return
	}

	h.invalidateAvailability(c)
	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully", "service": updated})
}

// Delete removes a ride entry
// DELETE /api/local-services/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.respondRepoError(c, err)
		return
	}

	h.invalidateAvailability(c)
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// Search returns the available cars for an exact city/package match
// POST /api/local-ride/search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.repo.FindRide(c.Request.Context(), req.City, req.Package)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No rides found for the selected city and package."})
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error.")
		return
	}

	available := make([]Car, 0, len(entry.Cars))
	for _, car := range entry.Cars {
		if car.Available {
			available = append(available, car)
		}
	}
	c.JSON(http.StatusOK, gin.H{"cars": available})
}

// AvailableCities lists the cities with at least one available car, cached
// GET /api/available-cities
func (h *Handler) AvailableCities(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []string
	if hit, err := h.cache.GetJSON(ctx, availableCitiesCacheKey, &cached); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{"cities": cached})
		return
	}

	cities, err := h.repo.AvailableCities(ctx)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if cities == nil {
		cities = []string{}
	}

	if err := h.cache.SetJSON(ctx, availableCitiesCacheKey, cities, availabilityCacheTTL); err != nil {
		logger.WithContext(ctx).Warn("Availability cache write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// SendConfirmationEmail emails a local ride confirmation with an admin copy
// POST /send-local-email
func (h *Handler) SendConfirmationEmail(c *gin.Context) {
	var req ConfirmationEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Route == "" || req.Car == nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing data for email")
		return
	}

	sc := &notifications.ServiceConfirmation{
		Email:         req.Email,
		Name:          req.Traveller.Name,
		Mobile:        req.Traveller.Mobile,
		ServiceType:   "LOCAL",
		Route:         req.Route,
		CarType:       req.Car.Type,
		CarPrice:      req.Car.Price,
		Date:          req.Date,
		Time:          req.Time,
		BookingID:     req.BookingID,
		PaymentMethod: req.PaymentMethod,
		TotalFare:     req.TotalFare,
		AdminCopy:     true,
	}
	if err := h.mailer.SendServiceConfirmation(c.Request.Context(), sc); err != nil {
		logger.WithContext(c.Request.Context()).Error("Local confirmation email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Local ride email sent successfully"})
}

// SendInquiry forwards a local cab inquiry to the operations inbox
// POST /send-local-inquiry
func (h *Handler) SendInquiry(c *gin.Context) {
	h.sendInquiry(c, true, "Local inquiry email sent to admin successfully")
}

// SendUnservedInquiry forwards an inquiry for a city/package the system does
// not currently serve
// POST /send-other-local-inquiry
func (h *Handler) SendUnservedInquiry(c *gin.Context) {
	h.sendInquiry(c, false, "Inquiry email sent to admin successfully")
}

func (h *Handler) sendInquiry(c *gin.Context, serviceAvailable bool, successMessage string) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.City == "" || req.Package == "" || req.Date == "" || req.PickupTime == "" || req.Name == "" || req.PhoneNumber == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing required fields for inquiry")
		return
	}

	inq := &notifications.Inquiry{
		City:             req.City,
		Package:          req.Package,
		Date:             req.Date,
		PickupTime:       req.PickupTime,
		Name:             req.Name,
		PhoneNumber:      req.PhoneNumber,
		ServiceAvailable: serviceAvailable,
	}
	if err := h.mailer.SendInquiry(c.Request.Context(), inq); err != nil {
		logger.WithContext(c.Request.Context()).Error("Inquiry email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to send inquiry email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": successMessage})
}

func (h *Handler) respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Service not found")
		return
	}
	logger.WithContext(c.Request.Context()).Error("Local ride service error", zap.Error(err))
	common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) invalidateAvailability(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), availableCitiesCacheKey); err != nil {
		logger.WithContext(c.Request.Context()).Warn("Availability cache invalidation failed", zap.Error(err))
	}
}

// RegisterRoutes registers local ride routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/add-local-bulk", h.CreateBulk)
	r.GET("/api/local-services", h.List)
	r.GET("/api/local-services/:id", h.Get)
	r.PUT("/api/local-services/:id", h.Update)
	r.DELETE("/api/local-services/:id", h.Delete)
	r.POST("/api/local-ride/search", h.Search)
	r.GET("/api/available-cities", h.AvailableCities)
	r.POST("/send-local-email", h.SendConfirmationEmail)
	r.POST("/send-local-inquiry", h.SendInquiry)
	r.POST("/send-other-local-inquiry", h.SendUnservedInquiry)
}
