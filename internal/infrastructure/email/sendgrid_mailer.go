package email

import (
	"context"
	"fmt"

	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer sends transactional email through SendGrid
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	logger    *zap.Logger
}

// NewSendGridMailer creates a new SendGridMailer
func NewSendGridMailer(cfg config.EmailConfig, logger *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
		logger:    logger,
	}
}

// Send delivers a single email to the recipient
func (m *SendGridMailer) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Warn("sendgrid rejected message",
			zap.Int("status", response.StatusCode),
			zap.String("body", response.Body))
		return fmt.Errorf("sendgrid send failed with status %d", response.StatusCode)
	}

	return nil
}

// NopMailer discards all email. Used when email delivery is disabled.
type NopMailer struct{}

// Send implements the Mailer interface and does nothing
func (NopMailer) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error {
	return nil
}
