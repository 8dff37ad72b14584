package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder вставляет заказ, строки корзины сохраняются слепком в jsonb.
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	// CountByPaymentOrderID сколько заказов уже сохранено для заказа шлюза.
	CountByPaymentOrderID(ctx context.Context, paymentOrderID string) (int, error)
	ListOrders(ctx context.Context, limit int) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
}

// orderRepository: конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_name, COALESCE(customer_email, ''), COALESCE(customer_phone, ''),
	COALESCE(customer_address, ''), COALESCE(customer_city, ''), COALESCE(customer_state, ''),
	COALESCE(customer_pin, ''), order_items, total_amount, COALESCE(payment_method, ''),
	COALESCE(payment_order_id, ''), COALESCE(payment_id, ''), created_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (customer_name, customer_email, customer_phone, customer_address,
	              customer_city, customer_state, customer_pin, order_items, total_amount,
	              payment_method, payment_order_id, payment_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	          RETURNING id, created_at`

	c := order.Customer
	err = r.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.Pincode,
		items, order.TotalAmount,
		nullIfEmpty(order.PaymentMethod), nullIfEmpty(order.PaymentOrderID), nullIfEmpty(order.PaymentID),
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return order.ID, nil
}

func (r *orderRepository) CountByPaymentOrderID(ctx context.Context, paymentOrderID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE payment_order_id = $1", paymentOrderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// ListOrders возвращает последние заказы, новые первыми.
func (r *orderRepository) ListOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC LIMIT $1"
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	order := &models.Order{}
	var items []byte
	c := &order.Customer
	if err := s.Scan(&order.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.Pincode,
		&items, &order.TotalAmount, &order.PaymentMethod, &order.PaymentOrderID, &order.PaymentID, &order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return order, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
