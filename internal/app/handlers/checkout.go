package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// ValidateCheckoutResponse ответ проверки формы доставки
type ValidateCheckoutResponse struct {
	Valid  bool                   `json:"valid"`
	Fields validation.FieldErrors `json:"fields,omitempty"`
}

// ValidateCheckoutHandler POST /api/checkout/validate
// Те же правила, что проверяет витрина перед оплатой.
func ValidateCheckoutHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ValidateCheckoutHandler"
		logger := log.With(slog.String("op", op))

		var customer models.CustomerData
		if err := decodeJSON(w, r, &customer); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if fieldErrs := validation.ValidateCustomer(customer); len(fieldErrs) > 0 {
			writeJSON(w, logger, http.StatusUnprocessableEntity, ValidateCheckoutResponse{Fields: fieldErrs})
			return
		}
		writeJSON(w, logger, http.StatusOK, ValidateCheckoutResponse{Valid: true})
	}
}
