package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/internal/notifications"
	"github.com/richxcame/cab-booking/internal/payments"
	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/logger"
	"github.com/richxcame/cab-booking/pkg/pagination"
)

// maxBookingIDAttempts bounds the regenerate-and-retry loop on a booking_id
// collision. Two concurrent creates can compute the same daily sequence
// number; the unique index catches it and the loser retries with a fresh
// count.
const maxBookingIDAttempts = 3

// Service handles booking business logic
type Service struct {
	repo   RepositoryInterface
	mailer MailerInterface
	now    func() time.Time
}

// NewService creates a new booking service
func NewService(repo RepositoryInterface, mailer MailerInterface) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		now:    time.Now,
	}
}

// GenerateBookingID builds the customer-facing booking ID: PC, the current
// date, and a per-day sequence number (count of today's bookings plus one,
// zero-padded to two digits).
func (s *Service) GenerateBookingID(ctx context.Context) (string, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.repo.CountCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("count bookings for id generation: %w", err)
	}
	return fmt.Sprintf("PC%s%02d", now.Format("20060102"), count+1), nil
}

// insertWithFreshID assigns a generated booking ID and inserts, retrying with
// a regenerated ID when the unique index reports a collision.
func (s *Service) insertWithFreshID(ctx context.Context, b *BookingRequest) error {
	for attempt := 1; attempt <= maxBookingIDAttempts; attempt++ {
		bookingID, err := s.GenerateBookingID(ctx)
		if err != nil {
			return err
		}
		b.BookingID = bookingID

		err = s.repo.Insert(ctx, b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateBookingID) {
			return err
		}
		logger.WithContext(ctx).Warn("Booking ID collision, retrying",
			zap.String("booking_id", bookingID), zap.Int("attempt", attempt))
	}
	return fmt.Errorf("booking id generation exhausted after %d attempts", maxBookingIDAttempts)
}

// normalizeServiceType maps the loosely-typed client service type onto the
// stored enum. Unknown values fall back to OUTSTATION, the most common trip.
func normalizeServiceType(raw string) ServiceType {
	switch ServiceType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ServiceAirport:
		return ServiceAirport
	case ServiceLocal:
		return ServiceLocal
	case ServiceOutstation:
		return ServiceOutstation
	default:
		return ServiceOutstation
	}
}

// CreateFromPayment persists a booking composed from a verified payment.
// It implements payments.BookingCreatorInterface.
func (s *Service) CreateFromPayment(ctx context.Context, draft *payments.BookingDraft, breakdown payments.FareBreakdown, method, orderID, paymentID string) (*payments.BookingRef, error) {
	route := draft.From
	if draft.From != "" && draft.To != "" {
		route = draft.From + " to " + draft.To
	} else if route == "" {
		route = draft.City
	}

	var cabPrice int64
	if draft.SelectedCabPrice != "" {
		if parsed, err := strconv.ParseFloat(draft.SelectedCabPrice, 64); err == nil {
			cabPrice = int64(math.Round(parsed))
		}
	}

	paymentDate := s.now()
	b := &BookingRequest{
		ServiceType: normalizeServiceType(draft.ServiceType),
		Traveller: Traveller{
			Name:       draft.Name,
			Email:      draft.Email,
			Mobile:     draft.MobileOrPhone(),
			Pickup:     draft.Pickup,
			Drop:       draft.Drop,
			Whatsapp:   bool(draft.Whatsapp),
			GSTDetails: bool(draft.GSTDetails),
		},
		Route: route,
		Cab: Cab{
			Type:  draft.SelectedCabType,
			Price: cabPrice,
			RefID: draft.SelectedCabID,
		},
		Date:              draft.Date,
		Time:              draft.PickupTimeOrTime(),
		EstimatedDistance: draft.EstimatedDistance,
		PaymentMethod:     method,
		PaymentDetails: PaymentDetails{
			TotalFare:         breakdown.TotalFare,
			AmountPaid:        breakdown.AmountPaid,
			RemainingAmount:   breakdown.RemainingAmount,
			PaymentStatus:     breakdown.PaymentStatus,
			RazorpayOrderID:   orderID,
			RazorpayPaymentID: paymentID,
			PaymentDate:       &paymentDate,
		},
		Status: StatusPending,
	}

	if err := s.insertWithFreshID(ctx, b); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, b)

	return &payments.BookingRef{
		ID:              b.ID.String(),
		CustomBookingID: b.BookingID,
	}, nil
}

// Create persists a direct booking request (no online payment). The fare is
// split from the cab price and the selected method, exactly as on the
// payment path.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*BookingRequest, error) {
	breakdown := payments.SplitFare(float64(req.Cab.Price), req.PaymentMethod)

	b := &BookingRequest{
		ServiceType:       req.ServiceType,
		Traveller:         req.Traveller,
		Route:             req.Route,
		Cab:               req.Cab,
		Date:              req.Date,
		Time:              req.Time,
		EstimatedDistance: req.EstimatedDistance,
		PaymentMethod:     req.PaymentMethod,
		PaymentDetails: PaymentDetails{
			TotalFare:       breakdown.TotalFare,
			AmountPaid:      breakdown.AmountPaid,
			RemainingAmount: breakdown.RemainingAmount,
			PaymentStatus:   breakdown.PaymentStatus,
		},
		Status: StatusPending,
	}

	if err := s.insertWithFreshID(ctx, b); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, b)

	return b, nil
}

// sendConfirmation emails the traveller and the operations inbox. Delivery
// failures are logged; they never fail the already-persisted booking.
func (s *Service) sendConfirmation(ctx context.Context, b *BookingRequest) {
	err := s.mailer.SendBookingConfirmation(ctx, &notifications.BookingConfirmation{
		BookingID:       b.BookingID,
		Name:            b.Traveller.Name,
		Email:           b.Traveller.Email,
		Mobile:          b.Traveller.Mobile,
		ServiceType:     string(b.ServiceType),
		Route:           b.Route,
		Date:            b.Date,
		Time:            b.Time,
		CabName:         DisplayCabName(b.Cab),
		TotalFare:       b.PaymentDetails.TotalFare,
		AmountPaid:      b.PaymentDetails.AmountPaid,
		RemainingAmount: b.PaymentDetails.RemainingAmount,
		PaymentStatus:   b.PaymentDetails.PaymentStatus,
		PaymentMethod:   b.PaymentMethod,
	})
	if err != nil {
		logger.WithContext(ctx).Error("Booking confirmation email failed",
			zap.Error(err), zap.String("booking_id", b.BookingID))
	}
}

// calculatePayment derives the listing's payment summary from the stored
// method and total fare rather than trusting the persisted split.
func calculatePayment(b *BookingRequest) CalculatedPayment {
	total := b.PaymentDetails.TotalFare
	switch b.PaymentMethod {
	case payments.MethodPartialPaid:
		return CalculatedPayment{
			RemainingAmount: math.Round(total * 0.8),
			PaymentStatus:   "20% Advance",
			TotalFare:       total,
		}
	case payments.MethodFullPaid:
		return CalculatedPayment{
			RemainingAmount: 0,
			PaymentStatus:   "100% Advance",
			TotalFare:       total,
		}
	default:
		return CalculatedPayment{
			RemainingAmount: total,
			PaymentStatus:   "Cash on Delivery",
			TotalFare:       total,
		}
	}
}

// List returns a page of bookings, newest first, each annotated with the
// derived payment summary and cab display name.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]ListEntry, *pagination.Meta, error) {
	list, total, err := s.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, nil, err
	}

	entries := make([]ListEntry, 0, len(list))
	for i := range list {
		b := list[i]
		entries = append(entries, ListEntry{
			BookingRequest:    b,
			CalculatedPayment: calculatePayment(&b),
			CabName:           DisplayCabName(b.Cab),
		})
	}

	return entries, pagination.BuildMeta(params.Page, params.Limit, total), nil
}

// UpdateStatus transitions a booking through its lifecycle, rejecting
// transitions the state machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusRequest) (*BookingRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ValidTransition(current.Status, req.Status) {
		return nil, common.NewValidationError(
			fmt.Sprintf("Cannot change status from %s to %s", current.Status, req.Status))
	}

	return s.repo.UpdateStatus(ctx, id, req.Status, req.AdminNotes)
}

// AssignDriver attaches driver details to an accepted booking, moves it to
// driver_sent, and emails the traveller.
func (s *Service) AssignDriver(ctx context.Context, id uuid.UUID, d DriverDetails) (*BookingRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ValidTransition(current.Status, StatusDriverSent) {
		return nil, common.NewValidationError(
			fmt.Sprintf("Cannot assign driver to a %s booking", current.Status))
	}

	updated, err := s.repo.UpdateDriverDetails(ctx, id, d)
	if err != nil {
		return nil, err
	}

	err = s.mailer.SendDriverDetails(ctx, &notifications.DriverAssignment{
		Email:          updated.Traveller.Email,
		Name:           updated.Traveller.Name,
		BookingID:      updated.BookingID,
		Route:          updated.Route,
		Date:           updated.Date,
		Time:           updated.Time,
		DriverName:     d.Name,
		WhatsappNumber: d.WhatsappNumber,
		VehicleNumber:  d.VehicleNumber,
		CarName:        d.CarName,
	})
	if err != nil {
		logger.WithContext(ctx).Error("Driver details email failed",
			zap.Error(err), zap.String("booking_id", updated.BookingID))
	}

	return updated, nil
}

// SendDeclineEmail notifies a traveller that their request cannot be served
func (s *Service) SendDeclineEmail(ctx context.Context, req *DeclineEmailRequest) error {
	return s.mailer.SendDecline(ctx, &notifications.Decline{
		Email:  req.Email,
		Route:  req.Route,
		Reason: req.Reason,
	})
}
