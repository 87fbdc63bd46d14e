// Package notify provides the outbound notification transports: an SMTP
// email sender and an HTTP SMS gateway client. Both implement the ports the
// dispatcher fans out through.
package notify

import (
	"context"
	"net/smtp"

	"chipdrop/internal/core/ports"

	"github.com/labstack/gommon/email"
)

// SMTPEmailSender sends email through an SMTP relay.
type SMTPEmailSender struct {
	client *email.Email
	from   string
}

// NewSMTPEmailSender creates an email sender for the given relay.
// addr is the host:port of the relay; host is repeated separately for the
// PLAIN auth handshake. Empty username disables authentication, which is the
// usual setup against a local relay in development.
func NewSMTPEmailSender(addr, host, username, password, from string) *SMTPEmailSender {
	client := email.New(addr)
	if username != "" {
		client.Auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPEmailSender{
		client: client,
		from:   from,
	}
}

// SendEmail delivers one message through the relay.
func (s *SMTPEmailSender) SendEmail(_ context.Context, msg ports.EmailMessage) error {
	return s.client.Send(&email.Message{
		From:     s.from,
		To:       msg.To,
		Subject:  msg.Subject,
		BodyText: msg.Body,
	})
}
