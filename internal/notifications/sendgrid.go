package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/richxcame/cab-booking/pkg/config"
)

// SendGridClient is the production email client
type SendGridClient struct {
	client *sendgrid.Client
	cfg    *config.EmailConfig
}

// NewSendGridClient creates an email client from configured credentials
func NewSendGridClient(cfg *config.EmailConfig) *SendGridClient {
	return &SendGridClient{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		cfg:    cfg,
	}
}

// Send delivers one email through SendGrid
func (c *SendGridClient) Send(ctx context.Context, msg *Message) error {
	from := mail.NewEmail(c.cfg.FromName, c.cfg.FromAddress)
	to := mail.NewEmail(msg.ToName, msg.ToAddress)
	email := mail.NewSingleEmail(from, msg.Subject, to, "", msg.HTMLBody)

	resp, err := c.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
