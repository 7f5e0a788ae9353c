package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/richxcame/cab-booking/internal/notifications"
)

// RepositoryInterface defines booking data access operations
type RepositoryInterface interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	Insert(ctx context.Context, b *BookingRequest) error
	List(ctx context.Context, limit, offset int) ([]BookingRequest, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes string) (*BookingRequest, error)
	UpdateDriverDetails(ctx context.Context, id uuid.UUID, d DriverDetails) (*BookingRequest, error)
}

// MailerInterface sends the transactional emails raised by booking events
type MailerInterface interface {
	SendBookingConfirmation(ctx context.Context, bc *notifications.BookingConfirmation) error
	SendDriverDetails(ctx context.Context, da *notifications.DriverAssignment) error
	SendDecline(ctx context.Context, d *notifications.Decline) error
}
