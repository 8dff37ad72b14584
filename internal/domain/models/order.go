package models

import "time"

// Order представляет оформленный заказ. Создаётся один раз после подтверждения оплаты
// и больше не изменяется.
type Order struct {
	ID             int64        `json:"id"`
	Customer       CustomerData `json:"customer"`
	Items          []CartItem   `json:"items"`
	TotalAmount    int64        `json:"total_amount"`
	PaymentMethod  string       `json:"payment_method,omitempty"`
	PaymentOrderID string       `json:"payment_order_id,omitempty"`
	PaymentID      string       `json:"payment_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
