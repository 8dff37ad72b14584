package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/linemk/sattvik-shop/internal/lib/breaker"
	"github.com/sony/gobreaker/v2"
)

// ResendMailer отправка через HTTP API Resend
type ResendMailer struct {
	log     *slog.Logger
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[string]
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// ResendError ответ Resend с кодом не 2xx
type ResendError struct {
	Status int
	Body   string
}

func (e *ResendError) Error() string {
	return fmt.Sprintf("resend api error: status %d: %s", e.Status, e.Body)
}

func NewResendMailer(log *slog.Logger, baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *ResendMailer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &ResendMailer{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
		cb:      breaker.New[string]("resend", log),
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	const op = "mailer.ResendMailer.Send"

	if len(msg.To) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}
	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("%s: marshal request: %w", op, err)
	}

	id, err := m.cb.Execute(func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+m.apiKey)

		res, err := m.http.Do(req)
		if err != nil {
			return "", err
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return "", err
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return "", &ResendError{Status: res.StatusCode, Body: string(data)}
		}

		var out resendResponse
		if err := json.Unmarshal(data, &out); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		return out.ID, nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("email sent", slog.String("op", op), slog.String("email_id", id))
	return id, nil
}
