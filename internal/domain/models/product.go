package models

// NutritionalInfo пищевая ценность на 100 г
type NutritionalInfo struct {
	Calories      string `json:"calories"`
	Protein       string `json:"protein"`
	Fat           string `json:"fat"`
	Carbohydrates string `json:"carbohydrates"`
	Fiber         string `json:"fiber"`
}

// Product представляет товар каталога. Каталог статический, цена в целых рупиях.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	Price            int64           `json:"price"`
	Weight           string          `json:"weight"`
	Image            string          `json:"image"`
	Images           []string        `json:"images,omitempty"`
	Benefits         []string        `json:"benefits"`
	Ingredients      []string        `json:"ingredients"`
	NutritionalInfo  NutritionalInfo `json:"nutritionalInfo"`
	InStock          bool            `json:"inStock"`
}

// ProductSnapshot: минимальный слепок товара, который попадает в заказ и письма
type ProductSnapshot struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Price  int64  `json:"price" validate:"gte=0"`
	Weight string `json:"weight"`
}

// Snapshot возвращает слепок товара на момент оформления заказа
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Weight: p.Weight,
	}
}
