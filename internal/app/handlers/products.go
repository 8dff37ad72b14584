package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/sattvik-shop/internal/catalog"
)

// ProductsHandler GET /api/products
func ProductsHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ProductsHandler"))
		writeJSON(w, logger, http.StatusOK, catalog.All())
	}
}

// ProductHandler GET /api/products/{id}
func ProductHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		product, ok := catalog.ByID(id)
		if !ok {
			logger.Info("product not found", slog.String("id", id))
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		writeJSON(w, logger, http.StatusOK, product)
	}
}
