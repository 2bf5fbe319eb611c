// Package notify delivers email notifications for platform events.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, toName, toEmail, subject, body string) error
}

// SendGridSender delivers email through SendGrid.
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridSender creates a SendGrid-backed sender.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers one plain-text email.
func (s *SendGridSender) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid rejected send: status %d", resp.StatusCode)
	}
	return nil
}

// LogSender logs instead of sending; used in development and tests.
type LogSender struct {
	logger *logging.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the would-be email.
func (s *LogSender) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	s.logger.Info("email suppressed (log sender)",
		"to", toEmail,
		"subject", subject,
	)
	return nil
}
