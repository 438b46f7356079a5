package adapter

import "context"

// MailSender dispatches transactional email through an external provider.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
