package mail

import (
	"Vaulted/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers notifications to the fixed administrative recipient.
type Mailer interface {
	// Configured reports whether an SMTP transport is available. Callers
	// fall back to logging when it is not.
	Configured() bool
	Send(subject, body string) error
}

type SmtpMailer struct {
	cfg config.SmtpConfig
}

func NewSmtpMailer(configuration *config.Configuration) Mailer {
	return &SmtpMailer{cfg: configuration.Smtp}
}

func (m *SmtpMailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != "" && m.cfg.AdminEmail != ""
}

func (m *SmtpMailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.AdminEmail)
	msg.SetHeader("To", m.cfg.AdminEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	host := m.cfg.Host
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := m.cfg.Port
	if port == 0 {
		port = 587
	}
	dialer := gomail.NewDialer(host, port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
