package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/events"
	"github.com/linemk/sattvik-shop/internal/mailer"
	"github.com/linemk/sattvik-shop/internal/storage"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// NotificationRequest тело send-order-notification
type NotificationRequest struct {
	CustomerData  models.CustomerData `json:"customerData"`
	Items         []models.CartItem   `json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64               `json:"totalAmount" validate:"gte=0"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	PaymentID     string              `json:"paymentId,omitempty"`
	OrderID       string              `json:"orderId,omitempty"`
}

// MailSettings адреса для писем о заказе
type MailSettings struct {
	From          string
	BusinessInbox string
	SupportEmail  string
}

type OrderNotificationService interface {
	Notify(ctx context.Context, req NotificationRequest) (*models.NotificationResult, error)
}

type orderNotificationService struct {
	log       *slog.Logger
	orders    storage.OrderStorage
	mailer    mailer.Mailer
	publisher events.OrderPublisher
	mail      MailSettings
}

func NewOrderNotificationService(log *slog.Logger, orders storage.OrderStorage, m mailer.Mailer, publisher events.OrderPublisher, mail MailSettings) OrderNotificationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &orderNotificationService{
		log:       log,
		orders:    orders,
		mailer:    m,
		publisher: publisher,
		mail:      mail,
	}
}

// Notify сохраняет заказ и отправляет два письма: владельцу и покупателю.
// Письма отправляются независимо, их неудача не отменяет сохранённый заказ.
// Повторный вызов для того же заказа шлюза создаст ещё одну запись.
func (s *orderNotificationService) Notify(ctx context.Context, req NotificationRequest) (*models.NotificationResult, error) {
	const op = "service.OrderNotificationService.Notify"
	logger := s.log.With(slog.String("op", op), slog.String("payment_order_id", req.OrderID))

	if s.mailer == nil {
		logger.Error("email service not configured")
		return nil, fmt.Errorf("%s: %w", op, notConfigured("Email service not configured"))
	}
	if s.orders == nil {
		logger.Error("database not configured")
		return nil, fmt.Errorf("%s: %w", op, errNoDatabase)
	}
	req.CustomerData = req.CustomerData.Normalize()
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("processing order notification", slog.String("customer", req.CustomerData.Name))

	if req.OrderID != "" {
		n, err := s.orders.CountByPaymentOrderID(ctx, req.OrderID)
		if err != nil {
			logger.Warn("failed to check duplicate order", slog.Any("error", err))
		} else if n > 0 {
			logger.Warn("order for this payment already exists, saving again", slog.Int("existing", n))
		}
	}

	order := &models.Order{
		Customer:       req.CustomerData,
		Items:          req.Items,
		TotalAmount:    req.TotalAmount,
		PaymentMethod:  req.PaymentMethod,
		PaymentOrderID: req.OrderID,
		PaymentID:      req.PaymentID,
	}
	if _, err := s.orders.CreateOrder(ctx, order); err != nil {
		logger.Error("failed to save order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save order: %w", op, err)
	}
	logger = logger.With(slog.Int64("order_id", order.ID))
	logger.Info("order saved")

	data := mailer.OrderEmail{
		OrderID:       order.ID,
		Customer:      order.Customer,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaymentID:     order.PaymentID,
		SupportEmail:  s.mail.SupportEmail,
	}

	res := &models.NotificationResult{OrderID: order.ID}
	res.BusinessEmail = s.send(ctx, logger, "business", mailer.RenderBusinessEmail, data,
		s.mail.BusinessInbox, mailer.BusinessSubject(order.Customer.Name, order.TotalAmount))
	res.CustomerEmail = s.send(ctx, logger, "customer", mailer.RenderCustomerEmail, data,
		order.Customer.Email, mailer.CustomerSubject())
	res.Success = res.BusinessEmail.Success || res.CustomerEmail.Success

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		logger.Warn("failed to publish order event", slog.Any("error", err))
	}

	return res, nil
}

func (s *orderNotificationService) send(
	ctx context.Context,
	logger *slog.Logger,
	kind string,
	render func(mailer.OrderEmail) (string, error),
	data mailer.OrderEmail,
	to, subject string,
) models.EmailStatus {
	logger = logger.With(slog.String("email", kind), slog.String("to", to))

	html, err := render(data)
	if err != nil {
		logger.Error("failed to render email", slog.Any("error", err))
		return models.EmailStatus{Error: err.Error()}
	}

	id, err := s.mailer.Send(ctx, mailer.Message{
		From:    s.mail.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		logger.Error("failed to send email", slog.Any("error", err))
		return models.EmailStatus{Error: err.Error()}
	}
	logger.Info("email sent", slog.String("email_id", id))
	return models.EmailStatus{Success: true, EmailID: id}
}
