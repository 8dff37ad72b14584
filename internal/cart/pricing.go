package cart

import (
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Pricing правила доставки и скидки, суммы в рупиях.
// Нулевые значения: доставка бесплатная, скидки нет.
type Pricing struct {
	DeliveryFee         int64
	FreeDeliveryFrom    int64
	DiscountPercent     int64
	DiscountMinSubtotal int64
}

var hundred = decimal.NewFromInt(100)

// Totals считает суммы заново по текущим строкам:
// total = Σ(price × qty) + delivery − discount, не меньше нуля.
func Totals(items []models.CartItem, rules Pricing) models.CartTotals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal()
	}

	var t models.CartTotals
	t.Subtotal = subtotal
	if len(items) == 0 {
		return t
	}

	if rules.DiscountPercent > 0 && subtotal >= rules.DiscountMinSubtotal {
		t.Discount = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(rules.DiscountPercent)).
			Div(hundred).
			Round(0).
			IntPart()
	}

	if rules.DeliveryFee > 0 && (rules.FreeDeliveryFrom <= 0 || subtotal < rules.FreeDeliveryFrom) {
		t.Delivery = rules.DeliveryFee
	}

	t.Total = t.Subtotal + t.Delivery - t.Discount
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}

// Priced корзина с правилами расчёта, итог пересчитывается при каждом вызове Total
type Priced struct {
	*Cart
	Rules Pricing
}

func NewPriced(rules Pricing) *Priced {
	return &Priced{Cart: &Cart{}, Rules: rules}
}

func (p *Priced) Total() int64 {
	return Totals(p.Lines(), p.Rules).Total
}
