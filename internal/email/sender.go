// Package email delivers generated outreach touches over SMTP.
package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
)

const sendTimeout = 10 * time.Second

// Sender delivers mail through a configured SMTP relay.
type Sender struct {
	client      *gomail.Client
	fromName    string
	fromAddress string
	log         *logger.Logger
}

// NewSender creates an SMTP sender from configuration. It fails when
// email delivery is not enabled.
func NewSender(cfg config.EmailConfig, log *logger.Logger) (*Sender, error) {
	if !cfg.GetEmailEnabled() {
		return nil, fmt.Errorf("email delivery is not enabled")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.GetSMTPPort()),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(sendTimeout),
	}
	if cfg.GetSMTPUsername() != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.GetSMTPUsername()),
			gomail.WithPassword(cfg.GetSMTPPassword()),
		)
	}

	client, err := gomail.NewClient(cfg.GetSMTPHost(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Sender{
		client:      client,
		fromName:    cfg.GetEmailFromName(),
		fromAddress: cfg.GetEmailFromAddress(),
		log:         log,
	}, nil
}

// Send delivers one plain-text message.
func (s *Sender) Send(ctx context.Context, toAddress, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddress); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid from address: %v", err))
	}
	if err := msg.To(toAddress); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid to address: %v", err))
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.Error("smtp send failed", "to", toAddress, "error", err)
		return apperr.Upstream("smtp send failed", err)
	}
	return nil
}
