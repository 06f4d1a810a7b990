package mailer

import (
	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
)

// NewSender returns an [SMTPSender] when cfg names a host and a
// [LogSender] otherwise.
func NewSender(cfg config.Mail, log *logger.Logger) (Sender, error) {
	if cfg.Host == "" {
		log.Warn().Msg("no SMTP host configured, emails will only be logged")
		return NewLogSender(log), nil
	}

	return NewSMTPSender(cfg, log)
}
