package service

import "errors"

var (
	// ErrNotConfigured не задан секрет или не подключено хранилище, нужное операции
	ErrNotConfigured      = errors.New("not configured")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProductNotFound    = errors.New("product not found")
)

// ConfigError сообщение для клиента о недостающей настройке, совпадает с ErrNotConfigured
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func (e *ConfigError) Unwrap() error { return ErrNotConfigured }

func notConfigured(msg string) error {
	return &ConfigError{Message: msg}
}

var errNoDatabase = notConfigured("Database not configured")
