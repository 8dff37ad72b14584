package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// CartItemRequest тело добавления и изменения строки корзины
type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// writeCartError переводит ошибки корзины в коды ответа
func writeCartError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		http.Error(w, fieldErrs.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, cart.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidQuantity):
		http.Error(w, cart.ErrInvalidQuantity.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrOutOfStock):
		http.Error(w, cart.ErrOutOfStock.Error(), http.StatusConflict)
	default:
		logger.Error("cart operation failed", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// GetCartHandler GET /api/cart/{session}
func GetCartHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetCartHandler"))

		view, err := carts.Get(r.Context(), chi.URLParam(r, "session"))
		if err != nil {
			writeCartError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, view)
	}
}

// AddCartItemHandler POST /api/cart/{session}/items
func AddCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.AddCartItemHandler"))

		var req CartItemRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		view, err := carts.AddItem(r.Context(), chi.URLParam(r, "session"), req.ProductID, req.Quantity)
		if err != nil {
			writeCartError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, view)
	}
}

// UpdateCartItemHandler PUT /api/cart/{session}/items/{productID}
func UpdateCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.UpdateCartItemHandler"))

		var req CartItemRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		view, err := carts.UpdateItem(r.Context(), chi.URLParam(r, "session"), chi.URLParam(r, "productID"), req.Quantity)
		if err != nil {
			writeCartError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, view)
	}
}

// RemoveCartItemHandler DELETE /api/cart/{session}/items/{productID}
func RemoveCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.RemoveCartItemHandler"))

		view, err := carts.RemoveItem(r.Context(), chi.URLParam(r, "session"), chi.URLParam(r, "productID"))
		if err != nil {
			writeCartError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, view)
	}
}

// ClearCartHandler DELETE /api/cart/{session}
func ClearCartHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ClearCartHandler"))

		if err := carts.Clear(r.Context(), chi.URLParam(r, "session")); err != nil {
			writeCartError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
