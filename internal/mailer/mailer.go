// Package mailer отправка писем о заказах через Resend API или SMTP.
package mailer

import (
	"context"
	"errors"
)

// ErrNoRecipients письмо без адресатов
var ErrNoRecipients = errors.New("no recipients")

// Message готовое к отправке письмо
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer отправляет письмо и возвращает его идентификатор у провайдера
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
