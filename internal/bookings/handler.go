package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/logger"
	"github.com/richxcame/cab-booking/pkg/pagination"
	"github.com/richxcame/cab-booking/pkg/validation"
)

// Handler handles HTTP requests for booking requests
type Handler struct {
	service *Service
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles direct booking submissions
// POST /api/create-booking-request
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Traveller.Name == "" || req.Traveller.Email == "" || req.Traveller.Mobile == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing required fields: name, email, or mobile")
		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Error creating booking request", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Error creating booking request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Booking request created successfully",
		"bookingId":       booking.ID,
		"customBookingId": booking.BookingID,
	})
}

// List returns a page of booking requests for the admin dashboard
// GET /api/booking-requests
func (h *Handler) List(c *gin.Context) {
	params := pagination.ParseParams(c)

	entries, meta, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Error listing booking requests", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Error fetching booking requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingRequests": entries,
		"total":           meta.Total,
		"page":            meta.CurrentPage,
		"totalPages":      meta.TotalPages,
	})
}

// UpdateStatus transitions a booking through its lifecycle
// PUT /api/booking-requests/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid booking request ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.respondUpdateError(c, err, "Error updating booking request status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Booking request status updated successfully",
		"bookingRequest": booking,
	})
}

// UpdateDriverDetails attaches driver details and notifies the traveller
// PUT /api/booking-requests/:id/driver-details
func (h *Handler) UpdateDriverDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid booking request ID")
		return
	}

	var req UpdateDriverDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d := req.DriverDetails
	if d.Name == "" || d.WhatsappNumber == "" || d.VehicleNumber == "" || d.CarName == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "All driver details are required")
		return
	}

	booking, err := h.service.AssignDriver(c.Request.Context(), id, d)
	if err != nil {
		h.respondUpdateError(c, err, "Error adding driver details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Driver details added and email sent successfully",
		"bookingRequest": booking,
	})
}

// SendDeclineEmail notifies a traveller that their request was declined
// POST /api/send-decline-email
func (h *Handler) SendDeclineEmail(c *gin.Context) {
	var req DeclineEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SendDeclineEmail(c.Request.Context(), &req); err != nil {
		logger.WithContext(c.Request.Context()).Error("Error sending decline email", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "Error sending decline email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Decline email sent successfully"})
}

func (h *Handler) respondUpdateError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Booking request not found")
		return
	}

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.AppErrorResponse(c, appErr)
		return
	}

	logger.WithContext(c.Request.Context()).Error(fallback, zap.Error(err))
	common.ErrorResponse(c, http.StatusInternalServerError, fallback)
}

// RegisterRoutes registers booking routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/create-booking-request", h.Create)
	r.GET("/api/booking-requests", h.List)
	r.PUT("/api/booking-requests/:id/status", h.UpdateStatus)
	r.PUT("/api/booking-requests/:id/driver-details", h.UpdateDriverDetails)
	r.POST("/api/send-decline-email", h.SendDeclineEmail)
}
