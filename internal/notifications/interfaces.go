package notifications

import "context"

// EmailClientInterface delivers a single email
type EmailClientInterface interface {
	Send(ctx context.Context, msg *Message) error
}
