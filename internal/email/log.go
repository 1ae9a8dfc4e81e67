package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender logs messages instead of delivering them. Used when
// RESEND_API_KEY is not set, so local development works without an account.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("dev mode: email not sent, logging instead")
	return nil
}
