package local

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/richxcame/cab-booking/internal/notifications"
)

// RepositoryInterface defines local ride data access operations
type RepositoryInterface interface {
	CreateBulk(ctx context.Context, entries []Entry) error
	List(ctx context.Context, search string, limit, offset int) ([]Entry, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindRide(ctx context.Context, city, ridePackage string) (*Entry, error)
	AvailableCities(ctx context.Context) ([]string, error)
}

// MailerInterface sends the emails raised by local ride actions
type MailerInterface interface {
	SendServiceConfirmation(ctx context.Context, sc *notifications.ServiceConfirmation) error
	SendInquiry(ctx context.Context, inq *notifications.Inquiry) error
}

// CacheInterface caches availability lookups
type CacheInterface interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
