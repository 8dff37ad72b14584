package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/sattvik-shop/internal/lib/breaker"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// ErrorResponse тело ошибки функций: {"error": "..."}
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Fields validation.FieldErrors `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeFunctionError ошибки ввода 400, разомкнутый breaker шлюза 503,
// недостающая настройка и всё прочее 500
func writeFunctionError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		fieldErrs validation.FieldErrors
		cfgErr    *service.ConfigError
	)
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "invalid request", Fields: fieldErrs})
	case errors.As(err, &cfgErr):
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: cfgErr.Message})
	case breaker.IsOpen(err):
		logger.Warn("payment gateway circuit open", slog.Any("error", err))
		w.Header().Set("Retry-After", "30")
		writeJSON(w, logger, http.StatusServiceUnavailable, ErrorResponse{Error: "Payment gateway temporarily unavailable"})
	default:
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// maxBodyBytes все тела запросов небольшие: форма, корзина, данные платежа
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

// writeBodyError ответ функции на тело, которое не удалось прочитать
func writeBodyError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("invalid request: decoding error", slog.Any("error", err))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, logger, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
		return
	}
	writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}
