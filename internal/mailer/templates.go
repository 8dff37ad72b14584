package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const customerSubject = "Order Confirmation - Thank you for your purchase!"

// OrderEmail данные для шаблонов писем
type OrderEmail struct {
	OrderID       int64
	Customer      models.CustomerData
	Items         []models.CartItem
	TotalAmount   int64
	PaymentMethod string
	PaymentID     string
	SupportEmail  string
}

func BusinessSubject(customerName string, total int64) string {
	return fmt.Sprintf("New Order from %s - ₹%d", customerName, total)
}

func CustomerSubject() string {
	return customerSubject
}

// RenderBusinessEmail письмо владельцу магазина о новом заказе
func RenderBusinessEmail(data OrderEmail) (string, error) {
	return render("business", data)
}

// RenderCustomerEmail подтверждение заказа для покупателя
func RenderCustomerEmail(data OrderEmail) (string, error) {
	return render("customer", data)
}

func render(name string, data OrderEmail) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
