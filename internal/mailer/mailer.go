// Package mailer sends transactional email over SMTP. Delivery is
// best effort: callers log failures and move on, guest communication
// never blocks the booking flow.
package mailer

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Mailer wraps an SMTP client with the sender identity.
type Mailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD, SMTP_FROM and SMTP_FROM_NAME. SMTP_HOST empty means
// mail is disabled and a nil Mailer is returned without error.
func NewFromEnv() (*Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{
		client:   client,
		from:     os.Getenv("SMTP_FROM"),
		fromName: os.Getenv("SMTP_FROM_NAME"),
	}, nil
}

// Send delivers a plain-text message to a single recipient. A nil
// Mailer silently drops the message.
func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
