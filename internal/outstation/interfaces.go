package outstation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/richxcame/cab-booking/internal/notifications"
)

// RepositoryInterface defines outstation route data access operations
type RepositoryInterface interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindRoute(ctx context.Context, city1, city2, tripType string) (*Entry, error)
	AvailableCityPairs(ctx context.Context) ([]Entry, error)
}

// MailerInterface sends the emails raised by outstation booking actions
type MailerInterface interface {
	SendServiceConfirmation(ctx context.Context, sc *notifications.ServiceConfirmation) error
	SendRouteAnnouncement(ctx context.Context, ra *notifications.RouteAnnouncement) error
}

// CacheInterface caches availability lookups
type CacheInterface interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
