// Package checkout ведёт покупателя от формы доставки до подтверждённого заказа.
//
// Оркестратор не знает про HTTP: шлюз оплаты, уведомление о заказе, окно
// оплаты и корзина передаются через интерфейсы из ports.go.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/validation"
)

var (
	ErrAlreadyProcessing = errors.New("checkout already in progress")
	ErrCompleted         = errors.New("checkout already completed")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPaymentSetup      = errors.New("payment setup failed")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrPaymentCancelled  = errors.New("payment cancelled")
	ErrNotVerified       = errors.New("payment not verified")
	ErrOrderNotPlaced    = errors.New("order not placed")
)

// View экран, на который уходит покупатель после оформления
type View string

const (
	ViewCart         View = ""
	ViewOrderSuccess View = "order-success"
	ViewOrderFailed  View = "order-failed"
)

const (
	msgInvalidForm  = "Please correct the highlighted fields."
	msgEmptyCart    = "Your cart is empty."
	msgSetupFailed  = "Payment setup failed. Please try again."
	msgConnectivity = "Unable to reach the payment service. Please check your internet connection and try again."
	msgCancelled    = "Payment was cancelled. Your cart has been kept."
	msgPlaced       = "Order Placed Successfully! Your order has been placed with %s. We'll contact you shortly."
	msgOrderFailed  = "There was an error processing your order. Please try again."
	msgEmailFailed  = "We could not send the confirmation email. Your order is still placed."
)

// Result итог одного запуска оформления
type Result struct {
	State          State
	View           View
	Message        string
	FieldErrors    validation.FieldErrors
	PaymentOrderID string
	PaymentID      string
	TotalAmount    int64
	Notification   *models.NotificationResult
	// Warning заказ оплачен, но уведомление не прошло
	Warning string
	Err     error
}

type Orchestrator struct {
	log      *slog.Logger
	backend  PaymentBackend
	direct   DirectPayment
	notifier OrderNotifier
	ui       PaymentUI
	cart     CartView

	mu         sync.Mutex
	state      State
	processing bool
	history    []State
}

func New(log *slog.Logger, backend PaymentBackend, notifier OrderNotifier, ui PaymentUI, cart CartView) *Orchestrator {
	return &Orchestrator{
		log:      log,
		backend:  backend,
		notifier: notifier,
		ui:       ui,
		cart:     cart,
		state:    Idle,
		history:  []State{Idle},
	}
}

// NewDirect оркестратор для оплаты при получении: шлюз и окно оплаты не нужны
func NewDirect(log *slog.Logger, direct DirectPayment, notifier OrderNotifier, cart CartView) *Orchestrator {
	return &Orchestrator{
		log:      log,
		direct:   direct,
		notifier: notifier,
		cart:     cart,
		state:    Idle,
		history:  []State{Idle},
	}
}

func (o *Orchestrator) method() string {
	if o.direct != nil {
		return o.direct.Method()
	}
	return o.backend.Method()
}

// State текущее состояние
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// History пройденные состояния, начиная с Idle
func (o *Orchestrator) History() []State {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]State, len(o.history))
	copy(out, o.history)
	return out
}

func (o *Orchestrator) moveTo(to State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !CanTransition(o.state, to) {
		o.log.Error("illegal checkout transition",
			slog.String("from", o.state.String()),
			slog.String("to", to.String()),
		)
		return
	}
	o.state = to
	o.history = append(o.history, to)
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Terminal() {
		return ErrCompleted
	}
	if o.processing {
		return ErrAlreadyProcessing
	}
	o.processing = true
	return nil
}

func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.processing = false
	o.mu.Unlock()
}

// Checkout проводит один платёж по текущей корзине.
// Ошибки до подтверждения оплаты возвращают оркестратор в Idle, корзина остаётся.
// Данные покупателя дальше формы уходят без пробелов по краям.
func (o *Orchestrator) Checkout(ctx context.Context, customer models.CustomerData) Result {
	const op = "checkout.Orchestrator.Checkout"
	logger := o.log.With(slog.String("op", op), slog.String("method", o.method()))

	if err := o.begin(); err != nil {
		return Result{State: o.State(), Err: err}
	}
	defer o.finish()

	customer = customer.Normalize()

	o.moveTo(Validating)
	lines := o.cart.Lines()
	total := o.cart.Total()
	if len(lines) == 0 {
		return o.abort(Result{Message: msgEmptyCart, Err: ErrEmptyCart})
	}
	if fieldErrs := validation.ValidateCustomer(customer); len(fieldErrs) > 0 {
		logger.Info("customer form rejected", slog.Int("fields", len(fieldErrs)))
		return o.abort(Result{Message: msgInvalidForm, FieldErrors: fieldErrs, Err: fieldErrs})
	}

	if o.direct != nil {
		return o.placeDirect(ctx, logger, customer, lines, total)
	}

	o.moveTo(CreatingPaymentOrder)
	order, err := o.backend.CreatePaymentOrder(ctx, total, customer)
	if err == nil && (order == nil || order.SessionID == "") {
		err = errors.New("gateway returned no payment session")
	}
	if err != nil {
		logger.Error("failed to create payment order", slog.Any("error", err))
		msg := msgSetupFailed
		if IsConnectivityError(err) {
			msg = msgConnectivity
		}
		return o.abort(Result{Message: msg, Err: fmt.Errorf("%w: %w", ErrPaymentSetup, err)})
	}
	logger.Info("payment order created", slog.String("order_id", order.OrderID))

	o.moveTo(AwaitingPaymentUI)
	outcome, err := o.ui.Open(ctx, order.SessionID)
	if err != nil {
		outcome = Outcome{Kind: OutcomeError, Reason: err.Error()}
	}
	switch outcome.Kind {
	case OutcomeCancelled:
		logger.Info("payment cancelled by customer", slog.String("order_id", order.OrderID))
		return o.abort(Result{PaymentOrderID: order.OrderID, Message: msgCancelled, Err: ErrPaymentCancelled})
	case OutcomeError:
		logger.Warn("payment window reported an error",
			slog.String("order_id", order.OrderID),
			slog.String("reason", outcome.Reason),
		)
		return o.abort(Result{
			PaymentOrderID: order.OrderID,
			Message:        "Payment failed: " + reasonOrDefault(outcome.Reason),
			Err:            fmt.Errorf("%w: %s", ErrPaymentFailed, outcome.Reason),
		})
	}

	// с этого момента деньги могли быть списаны, повторная оплата недопустима
	o.moveTo(VerifyingPayment)
	verification, err := o.backend.VerifyPayment(ctx, order, outcome)
	if err != nil || verification == nil || !verification.IsValid {
		if err == nil {
			err = ErrNotVerified
		} else {
			err = fmt.Errorf("%w: %w", ErrNotVerified, err)
		}
		logger.Error("payment verification failed",
			slog.String("order_id", order.OrderID),
			slog.Any("error", err),
		)
		o.moveTo(Failed)
		o.cart.Clear()
		return Result{
			State:          Failed,
			View:           ViewOrderFailed,
			PaymentOrderID: order.OrderID,
			TotalAmount:    total,
			Message:        contactSupport("Payment verification failed.", order.OrderID),
			Err:            err,
		}
	}

	paymentID := outcome.PaymentRef
	if paymentID == "" {
		paymentID = verification.PaymentID
	}

	o.moveTo(PersistingOrder)
	res := Result{
		PaymentOrderID: order.OrderID,
		PaymentID:      paymentID,
		TotalAmount:    total,
		Message:        fmt.Sprintf(msgPlaced, o.method()),
	}
	notification, err := o.notifier.NotifyOrder(ctx, OrderNotification{
		CustomerData:  customer,
		Items:         lines,
		TotalAmount:   total,
		PaymentMethod: o.backend.Method(),
		PaymentID:     paymentID,
		OrderID:       order.OrderID,
	})
	switch {
	case err != nil:
		logger.Error("order notification failed", slog.String("order_id", order.OrderID), slog.Any("error", err))
		res.Warning = contactSupport("Your payment was received but we could not record the order automatically.", order.OrderID)
	case !notification.Success:
		logger.Warn("order stored, confirmation emails not sent", slog.Int64("order", notification.OrderID))
		res.Notification = notification
		res.Warning = msgEmailFailed
	default:
		res.Notification = notification
	}
	return o.complete(logger, res)
}

// placeDirect заказ без шлюза: Validating -> PersistingOrder -> Done.
// Деньги не списывались, поэтому отказ сервера возвращает в Idle и корзина остаётся.
func (o *Orchestrator) placeDirect(ctx context.Context, logger *slog.Logger, customer models.CustomerData, lines []models.CartItem, total int64) Result {
	orderID, paymentID := o.direct.References()

	o.moveTo(PersistingOrder)
	notification, err := o.notifier.NotifyOrder(ctx, OrderNotification{
		CustomerData:  customer,
		Items:         lines,
		TotalAmount:   total,
		PaymentMethod: o.direct.Method(),
		PaymentID:     paymentID,
		OrderID:       orderID,
	})
	if err != nil {
		logger.Error("order was not accepted", slog.String("order_id", orderID), slog.Any("error", err))
		return o.abort(Result{
			PaymentOrderID: orderID,
			Message:        msgOrderFailed,
			Err:            fmt.Errorf("%w: %w", ErrOrderNotPlaced, err),
		})
	}

	res := Result{
		PaymentOrderID: orderID,
		PaymentID:      paymentID,
		TotalAmount:    total,
		Message:        fmt.Sprintf(msgPlaced, o.direct.Method()),
		Notification:   notification,
	}
	if notification != nil && !notification.Success {
		logger.Warn("order stored, confirmation emails not sent", slog.Int64("order", notification.OrderID))
		res.Warning = msgEmailFailed
	}
	return o.complete(logger, res)
}

// complete заказ принят: корзина очищается, покупатель уходит на order-success
func (o *Orchestrator) complete(logger *slog.Logger, res Result) Result {
	o.moveTo(Done)
	o.cart.Clear()
	res.State = Done
	res.View = ViewOrderSuccess
	logger.Info("checkout completed", slog.String("order_id", res.PaymentOrderID))
	return res
}

// abort возвращает оркестратор в Idle, корзина не трогается
func (o *Orchestrator) abort(res Result) Result {
	o.moveTo(Idle)
	res.State = Idle
	res.View = ViewCart
	return res
}

func contactSupport(prefix, orderID string) string {
	return fmt.Sprintf("%s Please contact support with order ID %s.", prefix, orderID)
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "unknown error"
	}
	return reason
}
