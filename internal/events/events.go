// Package events публикация событий о заказах в RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const OrderPlacedQueue = "order.placed"

const publishTimeout = 3 * time.Second

// OrderPlaced событие о сохранённом заказе
type OrderPlaced struct {
	EventID        string            `json:"eventId"`
	EventType      string            `json:"eventType"`
	OrderID        int64             `json:"orderId"`
	CustomerEmail  string            `json:"customerEmail"`
	Items          []models.CartItem `json:"items"`
	TotalAmount    int64             `json:"totalAmount"`
	PaymentMethod  string            `json:"paymentMethod,omitempty"`
	PaymentOrderID string            `json:"paymentOrderId,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *models.Order) error
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch  channel
	now func() time.Time
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}
	return &RabbitPublisher{ch: ch, now: time.Now}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o *models.Order) error {
	ev := OrderPlaced{
		EventID:        uuid.NewString(),
		EventType:      "OrderPlaced",
		OrderID:        o.ID,
		CustomerEmail:  o.Customer.Email,
		Items:          o.Items,
		TotalAmount:    o.TotalAmount,
		PaymentMethod:  o.PaymentMethod,
		PaymentOrderID: o.PaymentOrderID,
		Timestamp:      p.now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(pubCtx, "", OrderPlacedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.Timestamp,
		Body:         body,
	})
}

// NoopPublisher используется, когда RabbitMQ не настроен
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, *models.Order) error { return nil }
