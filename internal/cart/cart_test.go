package cart_test

import (
	"testing"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	premium = models.Product{ID: "premium-makhana", Name: "Premium Makhana", Price: 299, Weight: "250g", InStock: true}
	roasted = models.Product{ID: "roasted-makhana", Name: "Roasted Makhana", Price: 349, Weight: "200g", InStock: true}
)

func TestCart_AddMergesLines(t *testing.T) {
	var c cart.Cart
	require.NoError(t, c.Add(premium, 1))
	require.NoError(t, c.Add(roasted, 2))
	require.NoError(t, c.Add(premium, 2))

	require.Len(t, c.Items, 2)
	assert.Equal(t, "premium-makhana", c.Items[0].Product.ID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestCart_AddRejectsInvalid(t *testing.T) {
	var c cart.Cart
	assert.ErrorIs(t, c.Add(premium, 0), cart.ErrInvalidQuantity)

	soldOut := premium
	soldOut.InStock = false
	assert.ErrorIs(t, c.Add(soldOut, 1), cart.ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	var c cart.Cart
	require.NoError(t, c.Add(premium, 1))
	require.NoError(t, c.Add(roasted, 1))

	require.NoError(t, c.UpdateQuantity("roasted-makhana", 4))
	assert.Equal(t, 4, c.Items[1].Quantity)

	// ноль удаляет строку
	require.NoError(t, c.UpdateQuantity("premium-makhana", 0))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "roasted-makhana", c.Items[0].Product.ID)

	assert.ErrorIs(t, c.UpdateQuantity("unknown", 2), cart.ErrItemNotFound)
}

func TestCart_RemoveAndClear(t *testing.T) {
	var c cart.Cart
	require.NoError(t, c.Add(premium, 1))
	require.NoError(t, c.Add(roasted, 1))

	require.NoError(t, c.Remove("premium-makhana"))
	assert.ErrorIs(t, c.Remove("premium-makhana"), cart.ErrItemNotFound)
	assert.Equal(t, 1, c.Count())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Count())
}

func TestCart_QuantityUpperBound(t *testing.T) {
	var c cart.Cart
	assert.ErrorIs(t, c.Add(premium, 1<<62), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(premium, cart.MaxQuantity+1), cart.ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Add(premium, 90))
	// сумма при слиянии тоже ограничена
	assert.ErrorIs(t, c.Add(premium, 10), cart.ErrInvalidQuantity)
	assert.Equal(t, 90, c.Items[0].Quantity)
	require.NoError(t, c.Add(premium, 9))
	assert.Equal(t, cart.MaxQuantity, c.Items[0].Quantity)

	assert.ErrorIs(t, c.UpdateQuantity("premium-makhana", cart.MaxQuantity+1), cart.ErrInvalidQuantity)
	assert.Equal(t, cart.MaxQuantity, c.Items[0].Quantity)
}
