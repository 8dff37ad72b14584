package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/sattvik-shop/internal/service"
)

// CreateCashfreeOrderHandler POST /functions/v1/create-cashfree-order
func CreateCashfreeOrderHandler(log *slog.Logger, payments service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCashfreeOrderHandler"
		logger := log.With(slog.String("op", op))

		var req service.CashfreeOrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, logger, err)
			return
		}

		order, err := payments.CreateCashfreeOrder(r.Context(), req)
		if err != nil {
			logger.Error("failed to create cashfree order", slog.Any("error", err))
			writeFunctionError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, order)
	}
}

type verifyCashfreeRequest struct {
	OrderID string `json:"order_id"`
}

// VerifyCashfreePaymentHandler POST /functions/v1/verify-cashfree-payment
func VerifyCashfreePaymentHandler(log *slog.Logger, payments service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.VerifyCashfreePaymentHandler"
		logger := log.With(slog.String("op", op))

		var req verifyCashfreeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, logger, err)
			return
		}

		res, err := payments.VerifyCashfreePayment(r.Context(), req.OrderID)
		if err != nil {
			logger.Error("failed to verify cashfree payment", slog.String("order_id", req.OrderID), slog.Any("error", err))
			writeFunctionError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}

// CreateRazorpayOrderHandler POST /functions/v1/create-razorpay-order
func CreateRazorpayOrderHandler(log *slog.Logger, payments service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateRazorpayOrderHandler"
		logger := log.With(slog.String("op", op))

		var req service.RazorpayOrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, logger, err)
			return
		}

		order, err := payments.CreateRazorpayOrder(r.Context(), req)
		if err != nil {
			logger.Error("failed to create razorpay order", slog.Any("error", err))
			writeFunctionError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, order)
	}
}

// verifyRazorpayRequest поля окна Razorpay или короткие имена
type verifyRazorpayRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"order_id"`
	PaymentID         string `json:"payment_id"`
	Signature         string `json:"signature"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// VerifyRazorpayPaymentHandler POST /functions/v1/verify-razorpay-payment
func VerifyRazorpayPaymentHandler(log *slog.Logger, payments service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.VerifyRazorpayPaymentHandler"
		logger := log.With(slog.String("op", op))

		var req verifyRazorpayRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, logger, err)
			return
		}

		res, err := payments.VerifyRazorpayPayment(r.Context(),
			firstNonEmpty(req.RazorpayOrderID, req.OrderID),
			firstNonEmpty(req.RazorpayPaymentID, req.PaymentID),
			firstNonEmpty(req.RazorpaySignature, req.Signature),
		)
		if err != nil {
			logger.Error("failed to verify razorpay payment", slog.Any("error", err))
			writeFunctionError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}

// SendOrderNotificationHandler POST /functions/v1/send-order-notification
func SendOrderNotificationHandler(log *slog.Logger, notifications service.OrderNotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SendOrderNotificationHandler"
		logger := log.With(slog.String("op", op))

		var req service.NotificationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, logger, err)
			return
		}

		res, err := notifications.Notify(r.Context(), req)
		if err != nil {
			logger.Error("failed to process order notification", slog.Any("error", err))
			writeFunctionError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}
