package cart_test

import (
	"testing"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines() []models.CartItem {
	return []models.CartItem{
		{Product: premium.Snapshot(), Quantity: 2}, // 598
		{Product: roasted.Snapshot(), Quantity: 1}, // 349
	}
}

func TestTotals_DefaultRulesMatchSubtotal(t *testing.T) {
	totals := cart.Totals(lines(), cart.Pricing{})
	assert.Equal(t, models.CartTotals{Subtotal: 947, Total: 947}, totals)
}

func TestTotals_DeliveryAndDiscount(t *testing.T) {
	rules := cart.Pricing{DeliveryFee: 40, FreeDeliveryFrom: 1000, DiscountPercent: 10, DiscountMinSubtotal: 500}
	totals := cart.Totals(lines(), rules)

	assert.Equal(t, int64(947), totals.Subtotal)
	assert.Equal(t, int64(95), totals.Discount, "10% of 947 rounds to 95")
	assert.Equal(t, int64(40), totals.Delivery)
	assert.Equal(t, int64(947+40-95), totals.Total)
}

func TestTotals_FreeDeliveryThreshold(t *testing.T) {
	rules := cart.Pricing{DeliveryFee: 40, FreeDeliveryFrom: 900}
	totals := cart.Totals(lines(), rules)
	assert.Zero(t, totals.Delivery)
	assert.Equal(t, int64(947), totals.Total)
}

func TestTotals_DiscountBelowMinimum(t *testing.T) {
	rules := cart.Pricing{DiscountPercent: 10, DiscountMinSubtotal: 5000}
	totals := cart.Totals(lines(), rules)
	assert.Zero(t, totals.Discount)
}

func TestTotals_EmptyCart(t *testing.T) {
	rules := cart.Pricing{DeliveryFee: 40}
	assert.Equal(t, models.CartTotals{}, cart.Totals(nil, rules))
}

func TestTotals_RecomputedFromCurrentLines(t *testing.T) {
	var c cart.Cart
	_ = c.Add(premium, 1)
	first := cart.Totals(c.Lines(), cart.Pricing{})

	_ = c.UpdateQuantity(premium.ID, 3)
	second := cart.Totals(c.Lines(), cart.Pricing{})

	assert.Equal(t, int64(299), first.Total)
	assert.Equal(t, int64(897), second.Total)
}

func TestPriced_TotalFollowsLines(t *testing.T) {
	p := cart.NewPriced(cart.Pricing{DeliveryFee: 40})
	assert.Zero(t, p.Total())

	assert.NoError(t, p.Add(premium, 2))
	assert.Equal(t, int64(598+40), p.Total())

	p.Clear()
	assert.Empty(t, p.Lines())
	assert.Zero(t, p.Total())
}

func TestTotals_HugeQuantityRejectedBeforePricing(t *testing.T) {
	basket := cart.NewPriced(cart.Pricing{})
	assert.ErrorIs(t, basket.Add(premium, 1<<62), cart.ErrInvalidQuantity)
	assert.Equal(t, int64(0), basket.Total())

	require.NoError(t, basket.Add(premium, cart.MaxQuantity))
	totals := cart.Totals(basket.Lines(), cart.Pricing{})
	assert.Equal(t, int64(299*cart.MaxQuantity), totals.Subtotal)
	assert.Equal(t, totals.Subtotal, totals.Total)
}
