package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/sattvik-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/sattvik-shop/internal/service"
)

// ListOrdersHandler GET /api/admin/orders?limit=N
func ListOrdersHandler(log *slog.Logger, orders service.OrderAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(
			slog.String("op", op),
			slog.String("role", jwtmiddleware.RoleFromContext(r.Context())),
		)

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "limit must be a number", http.StatusBadRequest)
				return
			}
			limit = n
		}

		list, err := orders.ListOrders(r.Context(), userID, limit)
		if err != nil {
			writeShopError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, list)
	}
}

// GetOrderHandler GET /api/admin/orders/{id}
func GetOrderHandler(log *slog.Logger, orders service.OrderAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || orderID <= 0 {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := orders.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			writeShopError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, order)
	}
}
