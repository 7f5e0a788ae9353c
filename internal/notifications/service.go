package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/pkg/config"
	"github.com/richxcame/cab-booking/pkg/logger"
)

// Service composes and delivers transactional emails. Delivery failures are
// returned to the caller; they never abort the booking flow that raised them.
type Service struct {
	client EmailClientInterface
	cfg    *config.EmailConfig
}

// NewService creates a new notifications service
func NewService(client EmailClientInterface, cfg *config.EmailConfig) *Service {
	return &Service{client: client, cfg: cfg}
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// SendBookingConfirmation emails the traveller and notifies the operations
// inbox. The admin copy is best effort; its failure is logged, not returned.
func (s *Service) SendBookingConfirmation(ctx context.Context, bc *BookingConfirmation) error {
	body, err := render(bookingConfirmationTmpl, bc)
	if err != nil {
		return err
	}
	err = s.client.Send(ctx, &Message{
		ToName:    bc.Name,
		ToAddress: bc.Email,
		Subject:   "Booking Confirmation - " + bc.BookingID,
		HTMLBody:  body,
	})
	if err != nil {
		return err
	}

	adminBody, err := render(adminNotificationTmpl, bc)
	if err != nil {
		return err
	}
	err = s.client.Send(ctx, &Message{
		ToName:    "Penta Cab Bookings",
		ToAddress: s.cfg.AdminAddress,
		Subject:   "New Booking Request - " + bc.BookingID,
		HTMLBody:  adminBody,
	})
	if err != nil {
		logger.WithContext(ctx).Error("Admin booking notification failed",
			zap.Error(err), zap.String("booking_id", bc.BookingID))
	}
	return nil
}

// SendDriverDetails emails the assigned driver's details to the traveller
func (s *Service) SendDriverDetails(ctx context.Context, da *DriverAssignment) error {
	body, err := render(driverDetailsTmpl, da)
	if err != nil {
		return err
	}
	return s.client.Send(ctx, &Message{
		ToName:    da.Name,
		ToAddress: da.Email,
		Subject:   "Driver Details for Booking " + da.BookingID,
		HTMLBody:  body,
	})
}

// SendServiceConfirmation emails a per-service booking confirmation to the
// traveller, with an admin copy when requested.
func (s *Service) SendServiceConfirmation(ctx context.Context, sc *ServiceConfirmation) error {
	body, err := render(serviceConfirmationTmpl, sc)
	if err != nil {
		return err
	}
	err = s.client.Send(ctx, &Message{
		ToName:    sc.Name,
		ToAddress: sc.Email,
		Subject:   sc.ServiceType + " Booking Confirmation",
		HTMLBody:  body,
	})
	if err != nil {
		return err
	}

	if sc.AdminCopy {
		err = s.client.Send(ctx, &Message{
			ToName:    "Penta Cab Bookings",
			ToAddress: s.cfg.AdminAddress,
			Subject:   "New " + sc.ServiceType + " Booking: " + sc.Route,
			HTMLBody:  body,
		})
		if err != nil {
			logger.WithContext(ctx).Error("Admin service confirmation failed",
				zap.Error(err), zap.String("route", sc.Route))
		}
	}
	return nil
}

// SendInquiry forwards a customer inquiry to the operations inbox
func (s *Service) SendInquiry(ctx context.Context, inq *Inquiry) error {
	body, err := render(inquiryTmpl, inq)
	if err != nil {
		return err
	}
	subject := "New Local Inquiry: " + inq.City + " - " + inq.Package + " - " + inq.Name
	if !inq.ServiceAvailable {
		subject = "Service Not Available - Local: " + inq.City + " - " + inq.Package + " - " + inq.Name
	}
	return s.client.Send(ctx, &Message{
		ToName:    "Penta Cab Bookings",
		ToAddress: s.cfg.AdminAddress,
		Subject:   subject,
		HTMLBody:  body,
	})
}

// SendRouteAnnouncement advertises a newly launched route to a subscriber
func (s *Service) SendRouteAnnouncement(ctx context.Context, ra *RouteAnnouncement) error {
	body, err := render(routeAnnouncementTmpl, ra)
	if err != nil {
		return err
	}
	return s.client.Send(ctx, &Message{
		ToAddress: ra.Email,
		Subject:   "New " + ra.Kind + " Route Now Available!",
		HTMLBody:  body,
	})
}

// SendDecline emails the traveller that the booking could not be served
func (s *Service) SendDecline(ctx context.Context, d *Decline) error {
	body, err := render(declineTmpl, d)
	if err != nil {
		return err
	}
	return s.client.Send(ctx, &Message{
		ToAddress: d.Email,
		Subject:   "Update on Your Booking Request",
		HTMLBody:  body,
	})
}
