package service_test

import (
	"context"
	"testing"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/lib/logger"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderAdmin(t *testing.T) (service.OrderAdminService, *fakeOrderRepo) {
	t.Helper()
	roles := newFakeRoleRepo()
	require.NoError(t, roles.GrantRole(context.Background(), 1, models.RoleAdmin))
	orders := &fakeOrderRepo{orders: []*models.Order{
		{ID: 10, TotalAmount: 598, PaymentMethod: "cashfree"},
		{ID: 11, TotalAmount: 349, PaymentMethod: "cod"},
	}}
	return service.NewOrderAdminService(logger.Discard(), orders, roles), orders
}

func TestOrderAdmin_GetOrder(t *testing.T) {
	svc, _ := newOrderAdmin(t)
	ctx := context.Background()

	order, err := svc.GetOrder(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, "cod", order.PaymentMethod)

	_, err = svc.GetOrder(ctx, 1, 99)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	_, err = svc.GetOrder(ctx, 2, 11)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestOrderAdmin_ListOrders(t *testing.T) {
	svc, _ := newOrderAdmin(t)
	ctx := context.Background()

	list, err := svc.ListOrders(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListOrders(ctx, 2, 0)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestOrderAdmin_NoDatabase(t *testing.T) {
	svc := service.NewOrderAdminService(logger.Discard(), nil, nil)
	_, err := svc.GetOrder(context.Background(), 1, 10)
	assert.ErrorIs(t, err, service.ErrNotConfigured)
}
