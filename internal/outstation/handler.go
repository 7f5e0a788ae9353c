package outstation

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
	availableCitiesCacheKey = "cache:available-outstation-cities"
	availabilityCacheTTL    = 5 * time.Minute
)

// Handler handles HTTP requests for outstation routes
type Handler struct {
	repo   RepositoryInterface
	cache  CacheInterface
	mailer MailerInterface
}

// NewHandler creates a new outstation handler
func NewHandler(repo RepositoryInterface, cache CacheInterface, mailer MailerInterface) *Handler {
	return &Handler{repo: repo, cache: cache, mailer: mailer}
}

// Create saves a new route entry
// POST /add-outstation
func (h *Handler) Create(c *gin.Context) {
	var entry Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.repo.Create(c.Request.Context(), &entry); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.invalidateAvailability(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Outstation booking saved"})
}

// List returns a page of routes
// GET /api/outstation-routes
func (h *Handler) List(c *gin.Context) {
	params := pagination.ParseParams(c)

	entries, total, err := h.repo.List(c.Request.Context(), params.Limit, params.Offset())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Limit, total)
	c.JSON(http.StatusOK, gin.H{
		"routes": entries,
		"pagination": gin.H{
			"currentPage": meta.CurrentPage,
			"totalPages":  meta.TotalPages,
			"totalRoutes": meta.Total,
			"hasNext":     meta.HasNext,
			"hasPrev":     meta.HasPrev,
		},
	})
}

// Get returns one route
// GET /api/outstation-routes/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid route ID")
		return
	}

	entry, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Update replaces a route
// PUT /api/outstation-routes/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid route ID")
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
	c.JSON(http.StatusOK, gin.H{"message": "Route updated successfully", "route": updated})
}

// Delete removes a route
// DELETE /api/outstation-routes/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid route ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.respondRepoError(c, err)
		return
	}

	h.invalidateAvailability(c)
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}

// Search returns the available cars and distance for an exact route match
// POST /api/intercity/search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.repo.FindRoute(c.Request.Context(), req.City1, req.City2, req.TripType)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No intercity rides found for your selection."})
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
	c.JSON(http.StatusOK, gin.H{"cars": available, "distance": entry.Distance})
}

// AvailableCities maps each served origin city to its destinations, cached
// GET /api/available-outstation-cities
func (h *Handler) AvailableCities(c *gin.Context) {
	ctx := c.Request.Context()

	var cached CityMap
	if hit, err := h.cache.GetJSON(ctx, availableCitiesCacheKey, &cached); err == nil && hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	entries, err := h.repo.AvailableCityPairs(ctx)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	result := CityMap{CityMap: map[string][]string{}, FromCities: []string{}}
	for _, e := range entries {
		if _, ok := result.CityMap[e.City1]; !ok {
			result.FromCities = append(result.FromCities, e.City1)
		}
		result.CityMap[e.City1] = appendUnique(result.CityMap[e.City1], e.City2)
	}

	if err := h.cache.SetJSON(ctx, availableCitiesCacheKey, result, availabilityCacheTTL); err != nil {
		logger.WithContext(ctx).Warn("Availability cache write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, result)
}

// SendConfirmationEmail emails an intercity booking confirmation
// POST /send-intercity-email
func (h *Handler) SendConfirmationEmail(c *gin.Context) {
	var req ConfirmationEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Route == "" || req.Cab == nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing required data")
		return
	}

	now := time.Now()
	sc := &notifications.ServiceConfirmation{
		Email:       req.Email,
		Name:        req.Traveller.Name,
		Mobile:      req.Traveller.Mobile,
		ServiceType: "OUTSTATION",
		Route:       req.Route,
		CarType:     req.Cab.Type,
		CarPrice:    req.Cab.Price,
		Date:        now.Format("02/01/2006"),
		Time:        now.Format("3:04 PM"),
	}
	if err := h.mailer.SendServiceConfirmation(c.Request.Context(), sc); err != nil {
		logger.WithContext(c.Request.Context()).Error("Intercity confirmation email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Email failed to send")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Intercity booking email sent successfully"})
}

// SendAnnouncementEmail advertises a new outstation route to a subscriber
// POST /send-route-email
func (h *Handler) SendAnnouncementEmail(c *gin.Context) {
	var req AnnouncementEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Route == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing email or route")
		return
	}

	cars := make([]notifications.AnnouncedCar, 0, len(req.Cars))
	for _, car := range req.Cars {
		cars = append(cars, notifications.AnnouncedCar{Type: car.Type, Available: car.Available, Price: car.Price})
	}

	ra := &notifications.RouteAnnouncement{Email: req.Email, Route: req.Route, Kind: "Outstation", Cars: cars}
	if err := h.mailer.SendRouteAnnouncement(c.Request.Context(), ra); err != nil {
		logger.WithContext(c.Request.Context()).Error("Outstation announcement email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Email sending failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (h *Handler) respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Route not found")
		return
	}
	logger.WithContext(c.Request.Context()).Error("Outstation route error", zap.Error(err))
	common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) invalidateAvailability(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), availableCitiesCacheKey); err != nil {
		logger.WithContext(c.Request.Context()).Warn("Availability cache invalidation failed", zap.Error(err))
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// RegisterRoutes registers outstation routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/add-outstation", h.Create)
	r.GET("/api/outstation-routes", h.List)
	r.GET("/api/outstation-routes/:id", h.Get)
	r.PUT("/api/outstation-routes/:id", h.Update)
	r.DELETE("/api/outstation-routes/:id", h.Delete)
	r.POST("/api/intercity/search", h.Search)
	r.GET("/api/available-outstation-cities", h.AvailableCities)
	r.POST("/send-intercity-email", h.SendConfirmationEmail)
	r.POST("/send-route-email", h.SendAnnouncementEmail)
}
