package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/cab-booking/pkg/common"
)

// Handler handles HTTP requests for payment orders and verification
type Handler struct {
	service *Service
}

// NewHandler creates a new payments handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateOrder opens a gateway order for the quoted price
// POST /api/create-order
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	price, err := req.ParsePrice()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), price, req.Booking, req.SelectedPayment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
		"status":   order.Status,
	})
}

// VerifyPayment verifies the gateway callback signature and creates the
// booking on success
// POST /api/verify-payment
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: razorpay_order_id, razorpay_payment_id, razorpay_signature",
		})
		return
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: razorpay_order_id, razorpay_payment_id, razorpay_signature",
		})
		return
	}

	result, err := h.service.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		var bookingErr *BookingCreationError
		if errors.As(err, &bookingErr) {
			// Partial failure: the payment stands, only persistence failed.
			// Detail is included for operator follow-up.
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Payment verified but booking creation failed",
				"error":   bookingErr.Err.Error(),
			})
			return
		}

		var appErr *common.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.StatusCode(), gin.H{"success": false, "message": appErr.Message})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification error"})
		return
	}

	if result.Booking == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified successfully"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Payment verified successfully and booking created",
		"bookingId":       result.Booking.ID,
		"customBookingId": result.Booking.CustomBookingID,
		"paymentDetails":  result.Breakdown,
	})
}

// RegisterRoutes registers payment routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/create-order", h.CreateOrder)
	r.POST("/api/verify-payment", h.VerifyPayment)
}
