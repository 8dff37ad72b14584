package middleware

import "net/http"

const (
	allowHeaders = "authorization, x-client-info, apikey, content-type"
	// FunctionMethods методы функций оплаты и уведомлений
	FunctionMethods = "POST, OPTIONS"
	// APIMethods методы REST API магазина
	APIMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// CORS добавляет заголовки ко всем ответам, preflight OPTIONS отвечает 200 без вызова обработчика
func CORS(allowOrigin, methods string) func(http.Handler) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowOrigin)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", methods)
			if allowOrigin != "*" {
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
