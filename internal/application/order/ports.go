package order

import "context"

// Mailer sends transactional email.
// The concrete implementation lives in the infrastructure layer.
type Mailer interface {
	// Send delivers a single email to the recipient
	Send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error
}
