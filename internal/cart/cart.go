// Package cart: корзина покупателя и расчёт её сумм.
package cart

import (
	"errors"
	"fmt"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

// MaxQuantity предел единиц одного товара в строке
const MaxQuantity = models.MaxLineQuantity

var (
	ErrInvalidQuantity = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrItemNotFound    = errors.New("item not in cart")
)

// Cart набор строк корзины, порядок строк: порядок добавления
type Cart struct {
	Items []models.CartItem `json:"items"`
}

// Add добавляет товар; если он уже в корзине, увеличивает количество.
// Итоговое количество строки не может превышать MaxQuantity.
func (c *Cart) Add(p models.Product, quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			if c.Items[i].Quantity > MaxQuantity-quantity {
				return ErrInvalidQuantity
			}
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	c.Items = append(c.Items, models.CartItem{Product: p.Snapshot(), Quantity: quantity})
	return nil
}

// UpdateQuantity задаёт количество; ноль и меньше удаляет строку
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Remove(productID string) error {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Count общее количество единиц товара
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Lines копия строк корзины
func (c *Cart) Lines() []models.CartItem {
	return append([]models.CartItem(nil), c.Items...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
