package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"hospital-portal-server/internal/config"
)

// Notifier delivers outbound notifications. Sends are attempt-once and, by
// default, failures are swallowed so a failed notification never blocks or
// rolls back the booking/payment that triggered it.
type Notifier interface {
	Send(recipient, subject, body string) error
}

// Mailer wraps a transport with the fail-silent policy.
type Mailer struct {
	transport Transport
	from      string

	// Raise surfaces delivery errors to the caller instead of
	// swallowing them. Off by default.
	Raise bool
}

// Transport is the actual delivery mechanism.
type Transport interface {
	Deliver(from, recipient, subject, body string) error
}

// New builds a Mailer from configuration. Unknown transports fall back to
// the console transport, matching the development default.
func New(cfg config.MailerConfig) *Mailer {
	var t Transport
	switch cfg.Transport {
	case "smtp":
		t = &SMTPTransport{
			Addr: cfg.Host + ":" + cfg.Port,
			Auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		}
	default:
		t = &ConsoleTransport{}
	}
	return &Mailer{transport: t, from: cfg.DefaultFrom}
}

// Send delivers one notification. Errors are logged and discarded unless
// Raise is set.
func (m *Mailer) Send(recipient, subject, body string) error {
	err := m.transport.Deliver(m.from, recipient, subject, body)
	if err != nil {
		if m.Raise {
			return err
		}
		log.Printf("mailer: delivery to %s failed: %v", recipient, err)
	}
	return nil
}

// SMTPTransport delivers via a plain SMTP relay.
type SMTPTransport struct {
	Addr string
	Auth smtp.Auth
}

// Deliver sends one message through the relay.
func (t *SMTPTransport) Deliver(from, recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, recipient, subject, body)
	return smtp.SendMail(t.Addr, t.Auth, from, []string{recipient}, []byte(msg))
}

// ConsoleTransport logs messages instead of sending them. Used in
// development so notification-triggering flows can be exercised without a
// mail relay.
type ConsoleTransport struct{}

// Deliver logs the message.
func (t *ConsoleTransport) Deliver(from, recipient, subject, body string) error {
	log.Printf("mailer (console): to=%s subject=%q\n%s", recipient, subject, body)
	return nil
}
