package models

// статусы заказа платёжного шлюза
const (
	PaymentStatusActive    = "ACTIVE"
	PaymentStatusPaid      = "PAID"
	PaymentStatusSuccess   = "SUCCESS"
	PaymentStatusCompleted = "COMPLETED"
)

// IsPaidStatus сообщает, подтверждает ли статус успешную оплату
func IsPaidStatus(status string) bool {
	switch status {
	case PaymentStatusPaid, PaymentStatusSuccess, PaymentStatusCompleted:
		return true
	}
	return false
}

// IsPendingStatus: заказ ещё ожидает оплаты, опрос стоит повторить
func IsPendingStatus(status string) bool {
	return status == PaymentStatusActive
}

// PaymentVerification итог проверки оплаты
type PaymentVerification struct {
	IsValid        bool           `json:"isValid"`
	OrderID        string         `json:"order_id"`
	PaymentID      string         `json:"payment_id,omitempty"`
	OrderStatus    string         `json:"order_status,omitempty"`
	PaymentDetails map[string]any `json:"payment_details,omitempty"`
	Attempts       int            `json:"attempts,omitempty"`
}

// EmailStatus результат отправки одного письма
type EmailStatus struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NotificationResult ответ функции уведомления о заказе
type NotificationResult struct {
	Success       bool        `json:"success"`
	OrderID       int64       `json:"orderId"`
	BusinessEmail EmailStatus `json:"businessEmail"`
	CustomerEmail EmailStatus `json:"customerEmail"`
}
