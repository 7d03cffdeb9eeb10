// Package mail sends contact-form notifications over SMTP. Sending is best
// effort: a missing recipient or SMTP failure never blocks the submission
// that triggered it.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/internal/config"
)

// Sender delivers a contact notification; implementations must be safe for
// concurrent use.
type Sender interface {
	SendContactNotification(name, email, phone, message string) error
}

type SMTPSender struct {
	cfg config.EnvConfig
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg config.EnvConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Enabled reports whether a recipient mailbox is configured. When it is not,
// SendContactNotification is a logged no-op.
func (s *SMTPSender) Enabled() bool {
	return s.cfg.GetContactRecipient() != ""
}

func (s *SMTPSender) SendContactNotification(name, email, phone, message string) error {
	recipient := s.cfg.GetContactRecipient()
	if recipient == "" {
		log.Warn().Msg("no contact recipient configured, notification not sent")
		return nil
	}

	from := s.cfg.GetSmtpFrom()
	if from == "" {
		from = s.cfg.GetSmtpAccount()
	}
	addr := s.cfg.GetSmtpHost() + ":" + s.cfg.GetSmtpPort()

	body := buildNotification(from, recipient, name, email, phone, message)

	var auth smtp.Auth
	if s.cfg.GetSmtpAccount() != "" {
		auth = smtp.PlainAuth("", s.cfg.GetSmtpAccount(), s.cfg.GetSmtpPassword(), s.cfg.GetSmtpHost())
	}

	if err := smtp.SendMail(addr, auth, from, []string{recipient}, body); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	log.Info().Str("recipient", recipient).Msg("contact notification sent")
	return nil
}

func buildNotification(from, to, name, email, phone, message string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New contact form submission from %s\r\n", name)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", name, email, phone, message)
	return []byte(b.String())
}
