package mailer

import (
	"context"

	"github.com/MKhiriev/go-pet-life/internal/logger"
)

// LogSender writes messages to the log instead of delivering them. It is
// used when no SMTP host is configured.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if len(msg.Recipients) == 0 {
		return ErrNoRecipients
	}

	s.logger.Info().
		Strs("recipients", msg.Recipients).
		Str("subject", msg.Subject).
		Str("html", msg.HTML).
		Msg("email delivery disabled, message logged")
	return nil
}
