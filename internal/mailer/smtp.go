package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/wneessen/go-mail"
)

const smtpTimeout = 15 * time.Second

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *mail.Client
	from   string
	logger *logger.Logger
}

// NewSMTPSender builds a sender for cfg. Authentication is enabled when a
// username is configured; STARTTLS is used when the server offers it.
func NewSMTPSender(cfg config.Mail, log *logger.Logger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(smtpTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.From,
		logger: log,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	m, err := s.buildMsg(msg)
	if err != nil {
		return err
	}

	if err = s.client.DialAndSendWithContext(ctx, m); err != nil {
		log.Err(err).Str("func", "*SMTPSender.Send").Str("subject", msg.Subject).Msg("error sending email")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	log.Debug().Str("func", "*SMTPSender.Send").Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func (s *SMTPSender) buildMsg(msg Message) (*mail.Msg, error) {
	if len(msg.Recipients) == 0 {
		return nil, ErrNoRecipients
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("%w: invalid sender: %w", ErrSendFailed, err)
	}
	if err := m.To(msg.Recipients...); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient: %w", ErrSendFailed, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return m, nil
}
