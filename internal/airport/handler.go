package airport

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
	availableAirportsCacheKey = "cache:available-airports"
	availabilityCacheTTL      = 5 * time.Minute
)

// Handler handles HTTP requests for airport transfer services
type Handler struct {
	repo   RepositoryInterface
	cache  CacheInterface
	mailer MailerInterface
}

// NewHandler creates a new airport handler
func NewHandler(repo RepositoryInterface, cache CacheInterface, mailer MailerInterface) *Handler {
	return &Handler{repo: repo, cache: cache, mailer: mailer}
}

// Create saves a new service entry
// POST /add-service
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
	c.JSON(http.StatusCreated, gin.H{"message": "Service entry saved"})
}

// List returns a page of services with optional search
// GET /api/airport-services
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

// Get returns one service entry
// GET /api/airport-services/:id
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

// Update replaces a service entry
// PUT /api/airport-services/:id
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

// Delete removes a service entry
// DELETE /api/airport-services/:id
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

// SearchCabs returns the available cars for an exact route match
// POST /api/search-cabs-forairport
func (h *Handler) SearchCabs(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.repo.FindService(c.Request.Context(), req.ServiceType, req.AirportCity, req.OtherLocation)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching cabs found."})
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	available := make([]Car, 0, len(entry.Cars))
	for _, car := range entry.Cars {
		if car.Available {
			available = append(available, car)
		}
	}
	c.JSON(http.StatusOK, gin.H{"cabs": available})
}

// AvailableAirports lists served airport cities with their drop and pick
// locations, cached in Redis.
// GET /api/available-airports
func (h *Handler) AvailableAirports(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Availability
	if hit, err := h.cache.GetJSON(ctx, availableAirportsCacheKey, &cached); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{"airports": cached})
		return
	}

	entries, err := h.repo.AvailableRoutes(ctx)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	grouped := map[string]*Availability{}
	order := []string{}
	for _, e := range entries {
		g, ok := grouped[e.AirportCity]
		if !ok {
			g = &Availability{AirportCity: e.AirportCity, DropLocations: []string{}, PickLocations: []string{}}
			grouped[e.AirportCity] = g
			order = append(order, e.AirportCity)
		}
		switch e.ServiceType {
		case "drop":
			g.DropLocations = appendUnique(g.DropLocations, e.OtherLocation)
		case "pick":
			g.PickLocations = appendUnique(g.PickLocations, e.OtherLocation)
		}
	}

	airports := make([]Availability, 0, len(order))
	for _, city := range order {
		airports = append(airports, *grouped[city])
	}

	if err := h.cache.SetJSON(ctx, availableAirportsCacheKey, airports, availabilityCacheTTL); err != nil {
		logger.WithContext(ctx).Warn("Availability cache write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"airports": airports})
}

// SendConfirmationEmail emails an airport booking confirmation
// POST /api/send-airport-email
func (h *Handler) SendConfirmationEmail(c *gin.Context) {
	var req ConfirmationEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Cab == nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing fields")
		return
	}

	sc := &notifications.ServiceConfirmation{
		Email:       req.Email,
		Name:        req.Traveller.Name,
		Mobile:      req.Traveller.Mobile,
		ServiceType: "AIRPORT",
		Route:       req.Route,
		CarType:     req.Cab.Type,
		CarPrice:    req.Cab.Price,
		Date:        req.Date,
		Time:        req.Time,
	}
	if err := h.mailer.SendServiceConfirmation(c.Request.Context(), sc); err != nil {
		logger.WithContext(c.Request.Context()).Error("Airport confirmation email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Email failed to send")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Airport booking email sent successfully"})
}

// SendAnnouncementEmail advertises a new airport route to a subscriber
// POST /send-airport-email
func (h *Handler) SendAnnouncementEmail(c *gin.Context) {
	var req AnnouncementEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Route == "" || req.Cars == nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing email, route, or car data")
		return
	}

	cars := make([]notifications.AnnouncedCar, 0, len(req.Cars))
	for _, car := range req.Cars {
		cars = append(cars, notifications.AnnouncedCar{Type: car.Type, Available: car.Available, Price: car.Price})
	}

	ra := &notifications.RouteAnnouncement{Email: req.Email, Route: req.Route, Kind: "Airport", Cars: cars}
	if err := h.mailer.SendRouteAnnouncement(c.Request.Context(), ra); err != nil {
		logger.WithContext(c.Request.Context()).Error("Airport announcement email failed", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (h *Handler) respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Service not found")
		return
	}
	logger.WithContext(c.Request.Context()).Error("Airport service error", zap.Error(err))
	common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) invalidateAvailability(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), availableAirportsCacheKey); err != nil {
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

// RegisterRoutes registers airport routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/add-service", h.Create)
	r.GET("/api/airport-services", h.List)
	r.GET("/api/airport-services/:id", h.Get)
	r.PUT("/api/airport-services/:id", h.Update)
	r.DELETE("/api/airport-services/:id", h.Delete)
	r.POST("/api/search-cabs-forairport", h.SearchCabs)
	r.GET("/api/available-airports", h.AvailableAirports)
	r.POST("/api/send-airport-email", h.SendConfirmationEmail)
	r.POST("/send-airport-email", h.SendAnnouncementEmail)
}
