package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/lib/logger"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const businessInbox = "owner@example.com"

var mailSettings = service.MailSettings{
	From:          "Mithila Sattvik Makhana <onboarding@resend.dev>",
	BusinessInbox: businessInbox,
	SupportEmail:  businessInbox,
}

func notificationRequest() service.NotificationRequest {
	return service.NotificationRequest{
		CustomerData: models.CustomerData{
			Name: "Asha", Email: "asha@example.com", Phone: "9876543210",
			Address: "12 Station Road", City: "Darbhanga", State: "Bihar", Pincode: "846004",
		},
		Items: []models.CartItem{
			{Product: models.ProductSnapshot{ID: "premium-makhana", Name: "Premium Makhana", Price: 299, Weight: "250g"}, Quantity: 2},
		},
		TotalAmount:   598,
		PaymentMethod: "cashfree",
		OrderID:       "order_1",
	}
}

func TestNotify_Success(t *testing.T) {
	orders := &fakeOrderRepo{}
	m := &fakeMailer{}
	pub := &fakePublisher{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, m, pub, mailSettings)

	res, err := svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, int64(1), res.OrderID)
	assert.Equal(t, models.EmailStatus{Success: true, EmailID: "email_" + businessInbox}, res.BusinessEmail)
	assert.Equal(t, models.EmailStatus{Success: true, EmailID: "email_asha@example.com"}, res.CustomerEmail)

	require.Len(t, orders.orders, 1)
	assert.Equal(t, int64(598), orders.orders[0].TotalAmount)
	assert.Equal(t, "order_1", orders.orders[0].PaymentOrderID)

	require.Len(t, m.sent, 2)
	assert.Equal(t, "New Order from Asha - ₹598", m.sent[0].Subject)
	assert.Equal(t, []string{businessInbox}, m.sent[0].To)
	assert.Equal(t, "Order Confirmation - Thank you for your purchase!", m.sent[1].Subject)

	assert.Len(t, pub.published, 1)
}

func TestNotify_OneEmailFails(t *testing.T) {
	orders := &fakeOrderRepo{}
	m := &fakeMailer{failTo: map[string]error{businessInbox: errors.New("rate limited")}}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, m, nil, mailSettings)

	res, err := svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)

	assert.True(t, res.Success, "one delivered email is enough")
	assert.False(t, res.BusinessEmail.Success)
	assert.Equal(t, "rate limited", res.BusinessEmail.Error)
	assert.True(t, res.CustomerEmail.Success)
	assert.Len(t, orders.orders, 1, "email failure never rolls back the order")
}

func TestNotify_BothEmailsFail(t *testing.T) {
	orders := &fakeOrderRepo{}
	m := &fakeMailer{failTo: map[string]error{
		businessInbox:      errors.New("down"),
		"asha@example.com": errors.New("down"),
	}}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, m, nil, mailSettings)

	res, err := svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Len(t, orders.orders, 1)
}

func TestNotify_DuplicateIsNotPrevented(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, &fakeMailer{}, nil, mailSettings)

	_, err := svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)
	_, err = svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)

	assert.Len(t, orders.orders, 2)
}

func TestNotify_SaveFailsSendsNothing(t *testing.T) {
	orders := &fakeOrderRepo{createErr: errors.New("db down")}
	m := &fakeMailer{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, m, nil, mailSettings)

	_, err := svc.Notify(context.Background(), notificationRequest())
	assert.Error(t, err)
	assert.Empty(t, m.sent)
}

func TestNotify_PublishErrorIgnored(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := service.NewOrderNotificationService(logger.Discard(), &fakeOrderRepo{}, &fakeMailer{}, pub, mailSettings)

	res, err := svc.Notify(context.Background(), notificationRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestNotify_NotConfigured(t *testing.T) {
	svc := service.NewOrderNotificationService(logger.Discard(), &fakeOrderRepo{}, nil, nil, mailSettings)
	_, err := svc.Notify(context.Background(), notificationRequest())
	assert.ErrorIs(t, err, service.ErrNotConfigured)

	svc = service.NewOrderNotificationService(logger.Discard(), nil, &fakeMailer{}, nil, mailSettings)
	_, err = svc.Notify(context.Background(), notificationRequest())
	assert.ErrorIs(t, err, service.ErrNotConfigured)
}

func TestNotify_InvalidPayload(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, &fakeMailer{}, nil, mailSettings)

	req := notificationRequest()
	req.Items = nil
	req.CustomerData.Pincode = "12"

	_, err := svc.Notify(context.Background(), req)
	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "items")
	assert.Contains(t, fields, "customerData.pincode")
	assert.Empty(t, orders.orders)
}

func TestNotify_TrimsCustomerData(t *testing.T) {
	orders := &fakeOrderRepo{}
	m := &fakeMailer{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, m, nil, mailSettings)

	req := notificationRequest()
	req.CustomerData.Phone = " 9876543210"
	req.CustomerData.Email = "asha@example.com "
	req.CustomerData.Pincode = "846004\n"

	res, err := svc.Notify(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, orders.orders, 1)
	assert.Equal(t, "9876543210", orders.orders[0].Customer.Phone)
	assert.Equal(t, "asha@example.com", orders.orders[0].Customer.Email)
	require.Len(t, m.sent, 2)
	assert.Equal(t, []string{"asha@example.com"}, m.sent[1].To)
}

func TestNotify_QuantityAboveLimit(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := service.NewOrderNotificationService(logger.Discard(), orders, &fakeMailer{}, nil, mailSettings)

	req := notificationRequest()
	req.Items[0].Quantity = models.MaxLineQuantity + 1

	_, err := svc.Notify(context.Background(), req)
	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "must be at most 99", fields["items[0].quantity"])
	assert.Empty(t, orders.orders)
}
