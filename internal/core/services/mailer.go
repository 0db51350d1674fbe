package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"staffhub/internal/config"
)

// Mailer is the outgoing-mail capability used by the auth flow
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
	NotifyPasswordChanged(ctx context.Context, email, name string) error
}

// NewMailer returns an SMTP mailer when SMTP is configured and a log-only
// mailer otherwise, so development setups work without a mail relay.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTP.Host == "" {
		log.Println("⚠️ SMTP not configured, mail will be logged only")
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg.SMTP}
}

// smtpMailer delivers mail through a plain-auth SMTP relay
type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) SendOTP(_ context.Context, email, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Your one-time password reset code is %s.\r\n\r\nIt expires in 5 minutes. If you did not request a reset, ignore this email.",
		code,
	)
	return m.send(email, subject, body)
}

func (m *smtpMailer) NotifyPasswordChanged(_ context.Context, email, name string) error {
	subject := "Password successfully changed"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour password has been successfully reset.\r\nIf you did not request this change, please contact support immediately.",
		name,
	)
	return m.send(email, subject, body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// logMailer writes mail to the log instead of sending it
type logMailer struct{}

func (m *logMailer) SendOTP(_ context.Context, email, code string) error {
	log.Printf("📧 [mail] OTP for %s: %s", email, code)
	return nil
}

func (m *logMailer) NotifyPasswordChanged(_ context.Context, email, _ string) error {
	log.Printf("📧 [mail] Password changed notice for %s", email)
	return nil
}
