// Package cashfree клиент Cashfree Payment Gateway (orders API).
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/sattvik-shop/internal/lib/breaker"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

const orderNote = "Order from Mithila Sattvik Makhana"

// Config параметры подключения к Cashfree
type Config struct {
	BaseURL    string
	APIVersion string
	AppID      string
	SecretKey  string
	Currency   string
	Timeout    time.Duration
}

// CustomerDetails данные покупателя в формате Cashfree
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
}

type OrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

// CreateOrderRequest входные данные для создания заказа
type CreateOrderRequest struct {
	Amount          decimal.Decimal
	CustomerDetails CustomerDetails
	OrderMeta       OrderMeta
}

type createOrderBody struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     json.Number     `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       OrderMeta       `json:"order_meta"`
	OrderNote       string          `json:"order_note"`
}

// Order ответ Cashfree. Raw хранит тело целиком, оно отдаётся клиенту без изменений.
type Order struct {
	OrderID          string          `json:"order_id"`
	OrderStatus      string          `json:"order_status"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
	PaymentSessionID string          `json:"payment_session_id"`
	Raw              map[string]any  `json:"-"`
}

// APIError ответ шлюза с кодом не 2xx
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cashfree api error: status %d: %s", e.Status, e.Body)
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
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &Client{
		log:  log,
		cfg:  cfg,
		http: httpClient,
		cb:   breaker.New[response]("cashfree", log),
		now:  time.Now,
	}
}

// Configured сообщает, заданы ли ключи доступа
func (c *Client) Configured() bool {
	return c.cfg.AppID != "" && c.cfg.SecretKey != ""
}

// NewOrderID идентификатор заказа вида order_<unix-ms>
func (c *Client) NewOrderID() string {
	return "order_" + strconv.FormatInt(c.now().UnixMilli(), 10)
}

// CreateOrder создаёт заказ в Cashfree и возвращает его вместе с payment_session_id
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	const op = "cashfree.Client.CreateOrder"

	body := createOrderBody{
		OrderID:         c.NewOrderID(),
		OrderAmount:     json.Number(req.Amount.String()),
		OrderCurrency:   c.cfg.Currency,
		CustomerDetails: req.CustomerDetails,
		OrderMeta:       req.OrderMeta,
		OrderNote:       orderNote,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	order, err := c.do(ctx, http.MethodPost, "/orders", payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.log.Info("cashfree order created", slog.String("order_id", order.OrderID))
	return order, nil
}

// GetOrder запрашивает текущее состояние заказа
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	const op = "cashfree.Client.GetOrder"

	order, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*Order, error) {
	resp, err := c.cb.Execute(func() (response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, body)
		if err != nil {
			return response{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-client-id", c.cfg.AppID)
		req.Header.Set("x-client-secret", c.cfg.SecretKey)
		req.Header.Set("x-api-version", c.cfg.APIVersion)

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
		// для breaker отказом считаем только 5xx
		if res.StatusCode >= http.StatusInternalServerError {
			return r, &APIError{Status: r.status, Body: string(data)}
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &APIError{Status: resp.status, Body: string(resp.body)}
	}

	var order Order
	if err := json.Unmarshal(resp.body, &order); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(resp.body, &order.Raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &order, nil
}
