package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type authError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RequireAuthorization отклоняет запросы без заголовка Authorization.
// Токен не проверяется: функции вызываются публичным ключом витрины.
func RequireAuthorization(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				log.Warn("request without authorization header",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(authError{
					Code:    http.StatusUnauthorized,
					Message: "Missing authorization header",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
