package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/gateway/cashfree"
	"github.com/linemk/sattvik-shop/internal/gateway/razorpay"
	"github.com/linemk/sattvik-shop/internal/lib/retry"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// CashfreeGateway методы клиента Cashfree, нужные сервису
type CashfreeGateway interface {
	Configured() bool
	CreateOrder(ctx context.Context, req cashfree.CreateOrderRequest) (*cashfree.Order, error)
	GetOrder(ctx context.Context, orderID string) (*cashfree.Order, error)
}

type RazorpayGateway interface {
	Configured() bool
	Secret() string
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*razorpay.Order, error)
}

// CashfreeOrderRequest тело create-cashfree-order
type CashfreeOrderRequest struct {
	Amount          decimal.Decimal          `json:"amount"`
	CustomerDetails cashfree.CustomerDetails `json:"customer_details"`
	OrderMeta       cashfree.OrderMeta       `json:"order_meta"`
}

// RazorpayOrderRequest тело create-razorpay-order
type RazorpayOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

type PaymentService interface {
	CreateCashfreeOrder(ctx context.Context, req CashfreeOrderRequest) (map[string]any, error)
	VerifyCashfreePayment(ctx context.Context, orderID string) (*models.PaymentVerification, error)
	CreateRazorpayOrder(ctx context.Context, req RazorpayOrderRequest) (map[string]any, error)
	VerifyRazorpayPayment(ctx context.Context, orderID, paymentID, signature string) (*models.PaymentVerification, error)
}

type paymentService struct {
	log       *slog.Logger
	cashfree  CashfreeGateway
	razorpay  RazorpayGateway
	poll      retry.Policy
	returnURL string
	currency  string
}

func NewPaymentService(log *slog.Logger, cf CashfreeGateway, rp RazorpayGateway, poll retry.Policy, returnURL, currency string) PaymentService {
	return &paymentService{
		log:       log,
		cashfree:  cf,
		razorpay:  rp,
		poll:      poll,
		returnURL: returnURL,
		currency:  currency,
	}
}

func positiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validation.FieldErrors{"amount": "must be greater than 0"}
	}
	return nil
}

// CreateCashfreeOrder создаёт заказ шлюза и возвращает ответ Cashfree как есть
func (s *paymentService) CreateCashfreeOrder(ctx context.Context, req CashfreeOrderRequest) (map[string]any, error) {
	const op = "service.PaymentService.CreateCashfreeOrder"
	logger := s.log.With(slog.String("op", op))

	if s.cashfree == nil || !s.cashfree.Configured() {
		logger.Error("cashfree credentials not configured")
		return nil, fmt.Errorf("%s: %w", op, notConfigured("Payment gateway not configured"))
	}
	if err := positiveAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.OrderMeta.ReturnURL == "" {
		req.OrderMeta.ReturnURL = s.returnURL
	}

	logger.Info("creating cashfree order", slog.String("amount", req.Amount.String()))
	order, err := s.cashfree.CreateOrder(ctx, cashfree.CreateOrderRequest{
		Amount:          req.Amount,
		CustomerDetails: req.CustomerDetails,
		OrderMeta:       req.OrderMeta,
	})
	if err != nil {
		logger.Error("cashfree order creation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order.Raw, nil
}

// VerifyCashfreePayment опрашивает статус заказа, пока он ACTIVE.
// Оплаченный статус означает успех, любой другой прекращает опрос сразу.
// Если последняя попытка закончилась ошибкой, ошибка возвращается.
func (s *paymentService) VerifyCashfreePayment(ctx context.Context, orderID string) (*models.PaymentVerification, error) {
	const op = "service.PaymentService.VerifyCashfreePayment"
	logger := s.log.With(slog.String("op", op), slog.String("order_id", orderID))

	if s.cashfree == nil || !s.cashfree.Configured() {
		logger.Error("cashfree credentials not configured")
		return nil, fmt.Errorf("%s: %w", op, notConfigured("Payment gateway not configured"))
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%s: %w", op, validation.FieldErrors{"order_id": "is required"})
	}

	order, attempts, err := retry.Do(ctx, s.poll,
		func(ctx context.Context, attempt int) (*cashfree.Order, error) {
			order, err := s.cashfree.GetOrder(ctx, orderID)
			if err != nil {
				logger.Warn("payment status check failed", slog.Int("attempt", attempt), slog.Any("error", err))
				return nil, err
			}
			logger.Info("payment status", slog.Int("attempt", attempt), slog.String("status", order.OrderStatus))
			return order, nil
		},
		func(order *cashfree.Order, err error) bool {
			if err != nil {
				return !isRetryableGatewayError(err)
			}
			return !models.IsPendingStatus(order.OrderStatus)
		},
	)
	if err != nil {
		logger.Error("payment verification failed", slog.Int("attempts", attempts), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &models.PaymentVerification{
		IsValid:        models.IsPaidStatus(order.OrderStatus),
		OrderID:        orderID,
		OrderStatus:    order.OrderStatus,
		PaymentDetails: order.Raw,
		Attempts:       attempts,
	}
	logger.Info("payment verified", slog.Bool("is_valid", res.IsValid), slog.Int("attempts", attempts))
	return res, nil
}

// isRetryableGatewayError ответы 4xx повторять бессмысленно
func isRetryableGatewayError(err error) bool {
	var apiErr *cashfree.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError || apiErr.Status == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled)
}

func (s *paymentService) CreateRazorpayOrder(ctx context.Context, req RazorpayOrderRequest) (map[string]any, error) {
	const op = "service.PaymentService.CreateRazorpayOrder"
	logger := s.log.With(slog.String("op", op))

	if s.razorpay == nil || !s.razorpay.Configured() {
		logger.Error("razorpay credentials not configured")
		return nil, fmt.Errorf("%s: %w", op, notConfigured("Razorpay credentials not configured"))
	}
	if err := positiveAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	logger.Info("creating razorpay order", slog.String("amount", req.Amount.String()))
	order, err := s.razorpay.CreateOrder(ctx, req.Amount, currency, req.Receipt)
	if err != nil {
		logger.Error("razorpay order creation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order.Raw, nil
}

// VerifyRazorpayPayment проверяет подпись платежа, сеть не используется
func (s *paymentService) VerifyRazorpayPayment(ctx context.Context, orderID, paymentID, signature string) (*models.PaymentVerification, error) {
	const op = "service.PaymentService.VerifyRazorpayPayment"
	logger := s.log.With(slog.String("op", op), slog.String("payment_id", paymentID))

	if s.razorpay == nil || s.razorpay.Secret() == "" {
		logger.Error("razorpay secret not configured")
		return nil, fmt.Errorf("%s: %w", op, notConfigured("Razorpay secret not configured"))
	}

	valid := razorpay.VerifySignature(orderID, paymentID, signature, s.razorpay.Secret())
	if valid {
		logger.Info("payment verification successful")
	} else {
		logger.Warn("payment verification failed")
	}
	return &models.PaymentVerification{
		IsValid:   valid,
		OrderID:   orderID,
		PaymentID: paymentID,
	}, nil
}
