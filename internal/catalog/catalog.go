// Package catalog: статический каталог товаров магазина.
package catalog

import "github.com/linemk/sattvik-shop/internal/domain/models"

const productImage = "/lovable-uploads/72f30427-c9c7-472a-a0f9-e397cfc22279.png"

var products = []models.Product{
	{
		ID:               "premium-makhana",
		Name:             "Premium Makhana",
		Description:      "Our flagship product, these premium grade fox nuts are carefully sourced from the heart of Mithila region. Each fox nut is handpicked to ensure superior quality and taste. Rich in protein and low in fat, these makhanas are perfect for health-conscious snackers and those looking to add a nutritional boost to their diet.",
		ShortDescription: "Premium quality fox nuts from the heart of Mithila",
		Price:            299,
		Weight:           "250g",
		Image:            productImage,
		Images:           []string{productImage},
		Benefits: []string{
			"High in protein and low in fat",
			"Excellent source of antioxidants",
			"Helps control blood sugar levels",
			"Supports heart health",
			"Aids in weight management",
		},
		Ingredients: []string{"100% Organic Fox Nuts (Euryale Ferox)"},
		NutritionalInfo: models.NutritionalInfo{
			Calories:      "347 kcal per 100g",
			Protein:       "9.7g per 100g",
			Fat:           "0.1g per 100g",
			Carbohydrates: "76.9g per 100g",
			Fiber:         "14.5g per 100g",
		},
		InStock: true,
	},
	{
		ID:               "roasted-makhana",
		Name:             "Roasted Makhana",
		Description:      "Our specially roasted makhanas are a perfect blend of tradition and taste. Lightly roasted to perfection, these fox nuts offer a delightful crunch with each bite. With no added preservatives or artificial flavors, they retain their natural goodness while providing an enhanced taste experience.",
		ShortDescription: "Perfectly roasted fox nuts for a delightful crunch",
		Price:            349,
		Weight:           "200g",
		Image:            productImage,
		Images:           []string{productImage},
		Benefits: []string{
			"Ready-to-eat snack option",
			"Perfect balance of crunch and flavor",
			"No added preservatives or artificial flavors",
			"Rich in magnesium and potassium",
			"Low glycemic index food",
		},
		Ingredients: []string{"100% Organic Fox Nuts (Euryale Ferox)", "Himalayan Pink Salt (trace)"},
		NutritionalInfo: models.NutritionalInfo{
			Calories:      "365 kcal per 100g",
			Protein:       "10.2g per 100g",
			Fat:           "0.3g per 100g",
			Carbohydrates: "78.1g per 100g",
			Fiber:         "13.9g per 100g",
		},
		InStock: true,
	},
}

// All возвращает копию каталога
func All() []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = clone(p)
	}
	return out
}

// ByID ищет товар по идентификатору
func ByID(id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return clone(p), true
		}
	}
	return models.Product{}, false
}

// слайсы копируются, чтобы вызывающий код не мог изменить каталог
func clone(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Benefits = append([]string(nil), p.Benefits...)
	p.Ingredients = append([]string(nil), p.Ingredients...)
	return p
}
