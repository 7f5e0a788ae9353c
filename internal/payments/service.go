package payments

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/config"
	"github.com/richxcame/cab-booking/pkg/logger"
)

// maxNoteLength bounds each reconciliation note sent to the gateway
const maxNoteLength = 100

// BookingCreationError reports that the signature was valid but persisting
// the booking failed. The payment itself is not reversed by this service;
// the detail is surfaced for operator follow-up.
type BookingCreationError struct {
	Err error
}

func (e *BookingCreationError) Error() string {
	return "payment verified but booking creation failed: " + e.Err.Error()
}

func (e *BookingCreationError) Unwrap() error {
	return e.Err
}

// Service handles gateway orders and payment verification
type Service struct {
	orders   OrderClientInterface
	bookings BookingCreatorInterface
	cfg      *config.RazorpayConfig
	now      func() time.Time
}

// NewService creates a new payments service
func NewService(orders OrderClientInterface, bookings BookingCreatorInterface, cfg *config.RazorpayConfig) *Service {
	return &Service{
		orders:   orders,
		bookings: bookings,
		cfg:      cfg,
		now:      time.Now,
	}
}

// VerifyResult is the outcome of a successful payment verification
type VerifyResult struct {
	Booking   *BookingRef
	Breakdown *FareBreakdown
}

// CreateOrder converts the price to paise and opens a gateway order carrying
// short reconciliation notes from the booking draft.
func (s *Service) CreateOrder(ctx context.Context, price float64, draft *BookingDraft, selectedPayment string) (*GatewayOrder, error) {
	amountInPaise := int64(math.Round(price * 100))

	if draft == nil {
		draft = &BookingDraft{}
	}
	notes := map[string]string{
		"selectedPayment": truncateNote(selectedPayment),
		"serviceType":     truncateNote(draft.ServiceType),
		"tripType":        truncateNote(draft.TripType),
		"city":            truncateNote(draft.City),
		"date":            truncateNote(draft.Date),
		"time":            truncateNote(draft.PickupTimeOrTime()),
		"car":             truncateNote(draft.CabName()),
		"name":            truncateNote(draft.Name),
		"mobile":          truncateNote(draft.MobileOrPhone()),
	}

	order, err := s.orders.CreateOrder(&OrderRequest{
		Amount:   amountInPaise,
		Currency: "INR",
		Receipt:  "receipt_" + strconv.FormatInt(s.now().UnixMilli(), 10),
		Notes:    notes,
	})
	if err != nil {
		logger.WithContext(ctx).Error("Razorpay order error", zap.Error(err), zap.Int64("amount_paise", amountInPaise))
		return nil, common.NewUpstreamError("Error creating order", err)
	}

	return order, nil
}

// VerifyPayment checks the gateway callback signature and, when a booking
// draft is attached, computes the fare split and persists the booking.
func (s *Service) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerifyResult, error) {
	secret := s.cfg.KeySecret
	if secret == "" {
		return nil, common.NewMisconfiguredError("Server misconfigured: RAZORPAY_KEY_SECRET not set")
	}

	if !VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, secret) {
		logger.WithContext(ctx).Warn("Payment signature mismatch",
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID))
		return nil, common.NewIntegrityError("Invalid signature sent!")
	}

	if req.BookingData == nil {
		return &VerifyResult{}, nil
	}

	draft := req.BookingData
	if draft.Name == "" || draft.Email == "" || draft.MobileOrPhone() == "" {
		logger.WithContext(ctx).Error("Booking draft missing required traveller fields",
			zap.String("order_id", req.RazorpayOrderID))
		return nil, common.NewValidationError("Missing required booking fields: name, email, or mobile")
	}

	breakdown := SplitFare(req.TotalFare, req.SelectedPayment)

	ref, err := s.bookings.CreateFromPayment(ctx, draft, breakdown, req.SelectedPayment, req.RazorpayOrderID, req.RazorpayPaymentID)
	if err != nil {
		logger.WithContext(ctx).Error("Error creating booking after verified payment",
			zap.Error(err), zap.String("order_id", req.RazorpayOrderID))
		return nil, &BookingCreationError{Err: err}
	}

	logger.WithContext(ctx).Info("Booking created from verified payment",
		zap.String("booking_id", ref.CustomBookingID),
		zap.String("payment_status", breakdown.PaymentStatus),
		zap.Float64("amount_paid", breakdown.AmountPaid))

	return &VerifyResult{Booking: ref, Breakdown: &breakdown}, nil
}

func truncateNote(s string) string {
	if len(s) > maxNoteLength {
		return s[:maxNoteLength]
	}
	return s
}
