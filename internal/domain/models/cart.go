package models

// MaxLineQuantity больше этого количество в строке не принимается
const MaxLineQuantity = 99

// CartItem: строка корзины: товар и количество
type CartItem struct {
	Product  ProductSnapshot `json:"product" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0,max=99"`
}

// LineTotal стоимость строки
func (i CartItem) LineTotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// CartTotals производные суммы корзины, пересчитываются при каждом чтении
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}
