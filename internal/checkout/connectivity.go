package checkout

import (
	"context"
	"errors"
	"net"
	"strings"
)

var connectivityHints = []string{
	"failed to fetch",
	"network",
	"connection refused",
	"connection reset",
	"no such host",
	"proxy",
	"unreachable",
	"timeout",
	"i/o timeout",
}

// IsConnectivityError ошибка сети, а не ответ сервера.
// Сначала проверяются типы ошибок, затем текст сообщения.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range connectivityHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
