// Package mailer delivers verification mail. Delivery is best-effort
// everywhere it is used; a failed send never fails the surrounding flow.
package mailer

//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/pitchpractice/auth-service/internal/auth/mailer Mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
}

// SMTPMailer sends verification mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (m *SMTPMailer) SendVerification(_ context.Context, email, token string) error {
	subject := "Verify your email address"
	body := fmt.Sprintf("Welcome! Use the following token to verify your email address:\r\n\r\n%s\r\n", token)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, email, subject, body))

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	addr := m.Host + ":" + m.Port

	if err := smtp.SendMail(addr, auth, m.From, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

// LogMailer stands in when no SMTP relay is configured (local development);
// it logs instead of sending.
type LogMailer struct {
	Log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{Log: log}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, token string) error {
	m.Log.InfoContext(ctx, "verification email suppressed, no SMTP configured", "email", email, "token", token)
	return nil
}
