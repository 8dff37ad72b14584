package models

import "strings"

// CustomerData контактные данные и адрес доставки покупателя
type CustomerData struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone_in"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,pincode"`
}

// Normalize копия без пробелов по краям полей. Проверка и отправка дальше
// выполняются над нормализованными данными.
func (c CustomerData) Normalize() CustomerData {
	return CustomerData{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		City:    strings.TrimSpace(c.City),
		State:   strings.TrimSpace(c.State),
		Pincode: strings.TrimSpace(c.Pincode),
	}
}
