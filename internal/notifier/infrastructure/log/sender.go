package log

import (
	"context"
	"log/slog"
)

// Sender writes confirmations to the log instead of delivering them.
// Used when no SMTP server is configured, typically in development.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(_ context.Context, to, subject, body string) error {
	s.log.Info("email (log sender)", "to", to, "subject", subject, "body", body)
	return nil
}
