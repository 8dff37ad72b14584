package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

var (
	_ PaymentBackend = (*CashfreeBackend)(nil)
	_ PaymentBackend = (*RazorpayBackend)(nil)
	_ OrderNotifier  = (*FunctionsClient)(nil)
)

// FunctionError не-2xx ответ серверной функции
type FunctionError struct {
	Function string
	Status   int
	Message  string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function %s: status %d: %s", e.Function, e.Status, e.Message)
}

// FunctionsClient вызывает /functions/v1/<name> с ключом в Authorization
type FunctionsClient struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

func NewFunctionsClient(baseURL, apiKey string, httpClient *http.Client) (*FunctionsClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid functions base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FunctionsClient{baseURL: u, apiKey: apiKey, http: httpClient}, nil
}

func (c *FunctionsClient) invoke(ctx context.Context, name string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("function %s: encode request: %w", name, err)
	}

	u := c.baseURL.JoinPath("functions", "v1", name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("function %s: read response: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FunctionError{Function: name, Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("function %s: decode response: %w", name, err)
	}
	return nil
}

// errorMessage достаёт error или message из тела ошибки
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *FunctionsClient) NotifyOrder(ctx context.Context, n OrderNotification) (*models.NotificationResult, error) {
	var res models.NotificationResult
	if err := c.invoke(ctx, "send-order-notification", n, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CashfreeBackend оплата через Cashfree: сессия оплаты и опрос статуса на сервере
type CashfreeBackend struct {
	fn        *FunctionsClient
	returnURL string
}

func NewCashfreeBackend(fn *FunctionsClient, returnURL string) *CashfreeBackend {
	return &CashfreeBackend{fn: fn, returnURL: returnURL}
}

func (b *CashfreeBackend) Method() string { return "cashfree" }

func (b *CashfreeBackend) CreatePaymentOrder(ctx context.Context, amount int64, customer models.CustomerData) (*PaymentOrder, error) {
	req := map[string]any{
		"amount": amount,
		"customer_details": map[string]string{
			"customer_id":    "cust_" + uuid.NewString()[:8],
			"customer_name":  customer.Name,
			"customer_email": customer.Email,
			"customer_phone": customer.Phone,
		},
		"order_meta": map[string]string{
			"return_url": b.returnURL,
		},
	}
	var res struct {
		OrderID          string `json:"order_id"`
		PaymentSessionID string `json:"payment_session_id"`
	}
	if err := b.fn.invoke(ctx, "create-cashfree-order", req, &res); err != nil {
		return nil, err
	}
	if res.PaymentSessionID == "" {
		return nil, errors.New("cashfree: no payment_session_id in response")
	}
	return &PaymentOrder{OrderID: res.OrderID, SessionID: res.PaymentSessionID}, nil
}

func (b *CashfreeBackend) VerifyPayment(ctx context.Context, order *PaymentOrder, _ Outcome) (*models.PaymentVerification, error) {
	var res models.PaymentVerification
	if err := b.fn.invoke(ctx, "verify-cashfree-payment", map[string]string{"order_id": order.OrderID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RazorpayBackend оплата через Razorpay: окно оплаты открывается по id заказа,
// подтверждение проверяется по подписи
type RazorpayBackend struct {
	fn       *FunctionsClient
	currency string
}

func NewRazorpayBackend(fn *FunctionsClient, currency string) *RazorpayBackend {
	if currency == "" {
		currency = "INR"
	}
	return &RazorpayBackend{fn: fn, currency: currency}
}

func (b *RazorpayBackend) Method() string { return "razorpay" }

func (b *RazorpayBackend) CreatePaymentOrder(ctx context.Context, amount int64, _ models.CustomerData) (*PaymentOrder, error) {
	var res struct {
		ID string `json:"id"`
	}
	req := map[string]any{"amount": amount, "currency": b.currency}
	if err := b.fn.invoke(ctx, "create-razorpay-order", req, &res); err != nil {
		return nil, err
	}
	if res.ID == "" {
		return nil, errors.New("razorpay: no order id in response")
	}
	return &PaymentOrder{OrderID: res.ID, SessionID: res.ID}, nil
}

func (b *RazorpayBackend) VerifyPayment(ctx context.Context, order *PaymentOrder, outcome Outcome) (*models.PaymentVerification, error) {
	req := map[string]string{
		"razorpay_order_id":   order.OrderID,
		"razorpay_payment_id": outcome.PaymentRef,
		"razorpay_signature":  outcome.Signature,
	}
	var res models.PaymentVerification
	if err := b.fn.invoke(ctx, "verify-razorpay-payment", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
