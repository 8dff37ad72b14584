package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/storage"
)

const (
	defaultOrdersLimit = 50
	maxOrdersLimit     = 200
)

// requireAdmin роль проверяется по БД, а не только по токену: снятая роль действует сразу
func requireAdmin(ctx context.Context, roles storage.RoleStorage, userID int64) error {
	if roles == nil {
		return errNoDatabase
	}
	ok, err := roles.HasRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin role: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

type OrderAdminService interface {
	ListOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
}

type orderAdminService struct {
	log    *slog.Logger
	orders storage.OrderStorage
	roles  storage.RoleStorage
}

func NewOrderAdminService(log *slog.Logger, orders storage.OrderStorage, roles storage.RoleStorage) OrderAdminService {
	return &orderAdminService{log: log, orders: orders, roles: roles}
}

// ListOrders последние заказы для администратора
func (s *orderAdminService) ListOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error) {
	const op = "service.OrderAdminService.ListOrders"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	if err := requireAdmin(ctx, s.roles, userID); err != nil {
		logger.Warn("admin check failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if limit <= 0 {
		limit = defaultOrdersLimit
	}
	if limit > maxOrdersLimit {
		limit = maxOrdersLimit
	}

	orders, err := s.orders.ListOrders(ctx, limit)
	if err != nil {
		logger.Error("failed to list orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// GetOrder один заказ со снимком строк, storage.ErrOrderNotFound если его нет
func (s *orderAdminService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderAdminService.GetOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("orderID", orderID))

	if err := requireAdmin(ctx, s.roles, userID); err != nil {
		logger.Warn("admin check failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, storage.ErrOrderNotFound) {
			logger.Error("failed to get order", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}
