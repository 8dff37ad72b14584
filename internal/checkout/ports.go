package checkout

import (
	"context"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeError
	OutcomeCancelled
)

// Outcome результат окна оплаты шлюза
type Outcome struct {
	Kind       OutcomeKind
	PaymentRef string
	// Signature есть только у шлюзов с проверкой подписи
	Signature string
	Reason    string
}

// PaymentOrder заказ, созданный в шлюзе. SessionID передаётся в окно оплаты.
type PaymentOrder struct {
	OrderID   string
	SessionID string
}

type PaymentBackend interface {
	Method() string
	CreatePaymentOrder(ctx context.Context, amount int64, customer models.CustomerData) (*PaymentOrder, error)
	VerifyPayment(ctx context.Context, order *PaymentOrder, outcome Outcome) (*models.PaymentVerification, error)
}

// DirectPayment способ оплаты без шлюза: заказ сразу уходит в уведомление
type DirectPayment interface {
	Method() string
	// References номер заказа и платежа, которые сервер сохранит с заказом
	References() (orderID, paymentID string)
}

// OrderNotification тело запроса send-order-notification
type OrderNotification struct {
	CustomerData  models.CustomerData `json:"customerData"`
	Items         []models.CartItem   `json:"items"`
	TotalAmount   int64               `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	PaymentID     string              `json:"paymentId,omitempty"`
	OrderID       string              `json:"orderId,omitempty"`
}

type OrderNotifier interface {
	NotifyOrder(ctx context.Context, n OrderNotification) (*models.NotificationResult, error)
}

// PaymentUI окно оплаты шлюза, его содержимое нам неподконтрольно
type PaymentUI interface {
	Open(ctx context.Context, sessionID string) (Outcome, error)
}

type CartView interface {
	Lines() []models.CartItem
	Total() int64
	Clear()
}
