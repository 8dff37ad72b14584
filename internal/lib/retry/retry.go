// Package retry: ограниченный повтор операции с фиксированной паузой.
package retry

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidPolicy = errors.New("retry: max attempts must be positive")

// Policy количество попыток и пауза между ними
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Op одна попытка, attempt начинается с 1
type Op[T any] func(ctx context.Context, attempt int) (T, error)

// DoneFunc решает, можно ли прекратить повторы по результату попытки
type DoneFunc[T any] func(value T, err error) bool

// Do вызывает op, пока done не вернёт true или не кончатся попытки.
// Между попытками ждёт policy.Delay, после последней не ждёт.
// Возвращает результат последней попытки, число сделанных попыток и её ошибку.
// Отмена контекста прерывает ожидание.
func Do[T any](ctx context.Context, policy Policy, op Op[T], done DoneFunc[T]) (T, int, error) {
	var (
		value T
		err   error
	)
	if policy.MaxAttempts <= 0 {
		return value, 0, ErrInvalidPolicy
	}

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		value, err = op(ctx, attempt)
		if done(value, err) || attempt == policy.MaxAttempts {
			return value, attempt, err
		}

		if waitErr := wait(ctx, policy.Delay); waitErr != nil {
			return value, attempt, waitErr
		}
	}

	return value, policy.MaxAttempts, err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
