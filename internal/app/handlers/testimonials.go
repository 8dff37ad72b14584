package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/sattvik-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/storage"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// writeShopError общие ошибки REST API магазина
func writeShopError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, logger, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation error", Fields: fieldErrs})
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, storage.ErrTestimonialNotFound), errors.Is(err, storage.ErrOrderNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		logger.Error("request failed", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// ListTestimonialsHandler GET /api/testimonials, только одобренные
func ListTestimonialsHandler(log *slog.Logger, testimonials service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListTestimonialsHandler"))

		list, err := testimonials.ListPublic(r.Context())
		if err != nil {
			writeShopError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, list)
	}
}

// SubmitTestimonialHandler POST /api/testimonials
func SubmitTestimonialHandler(log *slog.Logger, testimonials service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SubmitTestimonialHandler"
		logger := log.With(slog.String("op", op))

		var req service.SubmitTestimonialRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		t, err := testimonials.Submit(r.Context(), req)
		if err != nil {
			writeShopError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusCreated, t)
	}
}

// ListAllTestimonialsHandler GET /api/admin/testimonials
func ListAllTestimonialsHandler(log *slog.Logger, testimonials service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListAllTestimonialsHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := testimonials.ListAll(r.Context(), userID)
		if err != nil {
			writeShopError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, list)
	}
}

// ApproveTestimonialHandler POST /api/admin/testimonials/{id}/approve
func ApproveTestimonialHandler(log *slog.Logger, testimonials service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ApproveTestimonialHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := testimonials.Approve(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			writeShopError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RejectTestimonialHandler DELETE /api/admin/testimonials/{id}
func RejectTestimonialHandler(log *slog.Logger, testimonials service.TestimonialService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.RejectTestimonialHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := testimonials.Reject(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			writeShopError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
