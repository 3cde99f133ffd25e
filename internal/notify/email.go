package notify

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// ErrEmailNotConfigured is returned when the SMTP settings are incomplete.
var ErrEmailNotConfigured = errors.New("email sender not configured")

// EmailSender delivers digests over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewEmailSender creates an EmailSender from the notify configuration.
func NewEmailSender(cfg config.NotifyConfig, logger *slog.Logger) (*EmailSender, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort == 0 || cfg.EmailFrom == "" {
		return nil, ErrEmailNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
		logger: logger.With(slog.String("component", "email_sender")),
	}, nil
}

// Send delivers the digest to the given address.
func (s *EmailSender) Send(to string, digest Digest) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", digest.Subject)
	m.SetBody("text/plain", digest.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send digest email",
			slog.String("error", err.Error()),
			slog.String("to", to))
		return fmt.Errorf("send digest email: %w", err)
	}

	s.logger.Info("digest email sent",
		slog.String("to", to),
		slog.Int("open_tasks", digest.OpenCount))
	return nil
}
