package urllog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/sattvik-shop/internal/lib/logger/handlers/urllog"
)

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.RequestID(urllog.CustomLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})))

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/create-cashfree-order", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var received, completed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &received))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &completed))

	assert.Equal(t, "request received", received["msg"])
	assert.Equal(t, "POST", received["method"])
	assert.NotEmpty(t, received["request_id"])

	assert.Equal(t, "request completed", completed["msg"])
	assert.Equal(t, "ERROR", completed["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), completed["status"])
	assert.Equal(t, received["request_id"], completed["request_id"])
}
