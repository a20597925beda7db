package utils

import (
	"gopkg.in/gomail.v2"

	"room-rental-server/config"
)

// SMTPMailer sends HTML mail through the configured SMTP server.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPMailer builds a mailer from the SMTP settings.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return &SMTPMailer{dialer: d, sender: cfg.SMTPSender}
}

// Send delivers a single HTML message. Failures are not retried.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
