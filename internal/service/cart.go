package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/catalog"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/validation"
)

const maxSessionIDLen = 128

// CartView корзина вместе с пересчитанными суммами
type CartView struct {
	SessionID string            `json:"sessionId"`
	Items     []models.CartItem `json:"items"`
	Count     int               `json:"count"`
	Totals    models.CartTotals `json:"totals"`
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error)
	UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) error
}

type cartService struct {
	log   *slog.Logger
	store cart.Store
	rules cart.Pricing
}

func NewCartService(log *slog.Logger, store cart.Store, rules cart.Pricing) CartService {
	return &cartService{log: log, store: store, rules: rules}
}

func checkSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" || len(sessionID) > maxSessionIDLen {
		return validation.FieldErrors{"session": "invalid cart session"}
	}
	return nil
}

func (s *cartService) view(sessionID string, c *cart.Cart) *CartView {
	items := c.Lines()
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartView{
		SessionID: sessionID,
		Items:     items,
		Count:     c.Count(),
		Totals:    cart.Totals(items, s.rules),
	}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "service.CartService.Get"

	if err := checkSession(sessionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to load cart", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.view(sessionID, c), nil
}

// AddItem добавляет товар каталога, цена берётся из каталога, а не от клиента
func (s *cartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	const op = "service.CartService.AddItem"

	product, ok := catalog.ByID(productID)
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", op, productID, ErrProductNotFound)
	}
	return s.mutate(ctx, op, sessionID, func(c *cart.Cart) error {
		return c.Add(product, quantity)
	})
}

// UpdateItem количество 0 и меньше удаляет строку
func (s *cartService) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	const op = "service.CartService.UpdateItem"
	return s.mutate(ctx, op, sessionID, func(c *cart.Cart) error {
		return c.UpdateQuantity(productID, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	const op = "service.CartService.RemoveItem"
	return s.mutate(ctx, op, sessionID, func(c *cart.Cart) error {
		return c.Remove(productID)
	})
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	const op = "service.CartService.Clear"

	if err := checkSession(sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) mutate(ctx context.Context, op, sessionID string, fn func(c *cart.Cart) error) (*CartView, error) {
	logger := s.log.With(slog.String("op", op), slog.String("session", sessionID))

	if err := checkSession(sessionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logger.Error("failed to load cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := fn(c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// пустую корзину не храним
	if c.IsEmpty() {
		err = s.store.Delete(ctx, sessionID)
	} else {
		err = s.store.Save(ctx, sessionID, c)
	}
	if err != nil {
		logger.Error("failed to save cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.view(sessionID, c), nil
}
