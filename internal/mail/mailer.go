package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches verification codes. Kept behind an interface so the
// transport can change (SMTP now, an API provider later) and tests can
// record sends.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, username, code string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, email, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verification code from Testimania")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour Testimania verification code is %s. It expires in one hour.\n\nIf you did not sign up, you can ignore this mail.\n",
		username, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending verification mail: %w", err)
	}
	return nil
}

// ConsoleMailer logs codes instead of sending them, for development setups
// without an SMTP relay.
type ConsoleMailer struct {
	logger *slog.Logger
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendVerificationCode(ctx context.Context, email, username, code string) error {
	m.logger.Info("verification code issued",
		"email", email,
		"username", username,
		"code", code,
	)
	return nil
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*ConsoleMailer)(nil)
)
