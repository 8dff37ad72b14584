package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer ничего не отправляет, только пишет письмо в лог. Для локального запуска.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipients
	}
	id := "log-" + uuid.NewString()
	m.log.Info("email skipped, log provider",
		slog.String("email_id", id),
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return id, nil
}
