// Package razorpay клиент Razorpay orders API и проверка подписи платежа.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/sattvik-shop/internal/lib/breaker"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

var paisePerRupee = decimal.NewFromInt(100)

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Order заказ Razorpay, сумма в пайсах
type Order struct {
	ID       string         `json:"id"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt"`
	Status   string         `json:"status"`
	Raw      map[string]any `json:"-"`
}

type createOrderBody struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// APIError ответ шлюза с кодом не 2xx
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay api error: status %d: %s", e.Status, e.Body)
}

type response struct {
	status int
	body   []byte
}

type Client struct {
	log  *slog.Logger
	cfg  Config
	http *http.Client
	cb   *gobreaker.CircuitBreaker[response]
	now  func() time.Time
}

func New(log *slog.Logger, cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		log:  log,
		cfg:  cfg,
		http: httpClient,
		cb:   breaker.New[response]("razorpay", log),
		now:  time.Now,
	}
}

// Configured заданы ли оба ключа. Для проверки подписи достаточно секрета.
func (c *Client) Configured() bool {
	return c.cfg.KeyID != "" && c.cfg.KeySecret != ""
}

func (c *Client) Secret() string {
	return c.cfg.KeySecret
}

// ToPaise переводит сумму в рупиях в пайсы
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Mul(paisePerRupee).Round(0).IntPart()
}

// CreateOrder создаёт заказ. Пустой receipt заменяется на receipt_<unix-ms>.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*Order, error) {
	const op = "razorpay.Client.CreateOrder"

	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = "receipt_" + strconv.FormatInt(c.now().UnixMilli(), 10)
	}
	payload, err := json.Marshal(createOrderBody{
		Amount:   ToPaise(amount),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	resp, err := c.cb.Execute(func() (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			strings.TrimRight(c.cfg.BaseURL, "/")+"/orders", bytes.NewReader(payload))
		if err != nil {
			return response{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

		res, err := c.http.Do(req)
		if err != nil {
			return response{}, err
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return response{}, err
		}
		r := response{status: res.StatusCode, body: data}
		if res.StatusCode >= http.StatusInternalServerError {
			return r, &APIError{Status: r.status, Body: string(data)}
		}
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, fmt.Errorf("%s: %w", op, &APIError{Status: resp.status, Body: string(resp.body)})
	}

	var order Order
	if err := json.Unmarshal(resp.body, &order); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if err := json.Unmarshal(resp.body, &order.Raw); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	c.log.Info("razorpay order created", slog.String("order_id", order.ID))
	return &order, nil
}

// Sign возвращает hex(HMAC_SHA256(orderID + "|" + paymentID, secret))
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature сравнивает подпись за постоянное время
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
