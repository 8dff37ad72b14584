package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MethodCOD        = "cod"
	MethodPartialCOD = "partial_cod"
)

// ErrUnknownMethod способ оплаты не поддерживается
var ErrUnknownMethod = errors.New("unknown payment method")

var _ DirectPayment = (*DirectBackend)(nil)

// DirectBackend оплата при получении, полная или с авансом курьеру.
// Номера заказа и платежа строятся из времени: ORDER_<ms> и COD_<ms>.
type DirectBackend struct {
	method string
	now    func() time.Time
}

func NewDirectBackend(method string) (*DirectBackend, error) {
	switch method {
	case MethodCOD, MethodPartialCOD:
		return &DirectBackend{method: method, now: time.Now}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

func (b *DirectBackend) Method() string { return b.method }

func (b *DirectBackend) References() (string, string) {
	ms := b.now().UnixMilli()
	return fmt.Sprintf("ORDER_%d", ms), fmt.Sprintf("%s_%d", strings.ToUpper(b.method), ms)
}
