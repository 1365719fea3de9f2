package notify

import "context"

// Notifier delivers operator-facing chat messages. Sends are
// fire-and-forget: a failed delivery must never fail the calling operation.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// EmailSender delivers customer-facing emails.
type EmailSender interface {
	SendEmail(ctx context.Context, to, toName, subject, body string) error
}

// NopNotifier discards messages. Used when no chat is configured and in tests.
type NopNotifier struct{}

func (NopNotifier) Send(ctx context.Context, message string) error { return nil }

// NopEmailSender discards emails.
type NopEmailSender struct{}

func (NopEmailSender) SendEmail(ctx context.Context, to, toName, subject, body string) error {
	return nil
}
