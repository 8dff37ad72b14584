package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer отправка через SMTP. Идентификатором письма служит Message-ID.
type SMTPMailer struct {
	log    *slog.Logger
	dialer dialer
	domain string
}

func NewSMTPMailer(log *slog.Logger, host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{
		log:    log,
		dialer: gomail.NewDialer(host, port, user, password),
		domain: host,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	const op = "mailer.SMTPMailer.Send"

	if len(msg.To) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.NewString()
	gm := gomail.NewMessage()
	gm.SetHeader("From", msg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, m.domain))
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("email sent", slog.String("op", op), slog.String("email_id", id))
	return id, nil
}
