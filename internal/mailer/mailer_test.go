package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/lib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func testOrderEmail() OrderEmail {
	return OrderEmail{
		OrderID: 7,
		Customer: models.CustomerData{
			Name: "Asha <b>Kumari</b>", Email: "asha@example.com", Phone: "9876543210",
			Address: "12 Station Road", City: "Darbhanga", State: "Bihar", Pincode: "846004",
		},
		Items: []models.CartItem{
			{Product: models.ProductSnapshot{ID: "premium-makhana", Name: "Premium Makhana", Price: 299, Weight: "250g"}, Quantity: 2},
		},
		TotalAmount:  598,
		SupportEmail: "support@example.com",
	}
}

func TestRenderBusinessEmail(t *testing.T) {
	html, err := RenderBusinessEmail(testOrderEmail())
	require.NoError(t, err)

	assert.Contains(t, html, "New Order Received!")
	assert.Contains(t, html, "Premium Makhana")
	assert.Contains(t, html, "250g")
	assert.Contains(t, html, "₹598")
	assert.Contains(t, html, "846004")
	// пользовательский ввод экранируется
	assert.NotContains(t, html, "<b>Kumari</b>")
	assert.Contains(t, html, "&lt;b&gt;Kumari&lt;/b&gt;")
}

func TestRenderCustomerEmail(t *testing.T) {
	html, err := RenderCustomerEmail(testOrderEmail())
	require.NoError(t, err)

	assert.Contains(t, html, "Order Confirmation")
	assert.Contains(t, html, "Total Amount: ₹598")
	assert.Contains(t, html, "support@example.com")
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "New Order from Asha - ₹598", BusinessSubject("Asha", 598))
	assert.Equal(t, "Order Confirmation - Thank you for your purchase!", CustomerSubject())
}

func TestResendMailer_Send(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	m := NewResendMailer(logger.Discard(), srv.URL, "re_key", time.Second, srv.Client())
	id, err := m.Send(context.Background(), Message{
		From: "Shop <onboarding@resend.dev>", To: []string{"a@b.c"}, Subject: "Hi", HTML: "<p>x</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "email_123", id)
	assert.Equal(t, []string{"a@b.c"}, got.To)
	assert.Equal(t, "Hi", got.Subject)
}

func TestResendMailer_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := NewResendMailer(logger.Discard(), srv.URL, "re_key", time.Second, srv.Client())
	_, err := m.Send(context.Background(), Message{To: []string{"a@b.c"}})

	var resendErr *ResendError
	require.True(t, errors.As(err, &resendErr))
	assert.Equal(t, http.StatusUnprocessableEntity, resendErr.Status)
}

func TestResendMailer_NoRecipients(t *testing.T) {
	m := NewResendMailer(logger.Discard(), "http://unused", "k", time.Second, nil)
	_, err := m.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{log: logger.Discard(), dialer: d, domain: "smtp.example.com"}

	id, err := m.Send(context.Background(), Message{From: "shop@example.com", To: []string{"a@b.c"}, Subject: "Hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"Hi"}, d.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"<" + id + "@smtp.example.com>"}, d.sent[0].GetHeader("Message-ID"))
}

func TestSMTPMailer_DialError(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	m := &SMTPMailer{log: logger.Discard(), dialer: d, domain: "smtp.example.com"}

	_, err := m.Send(context.Background(), Message{To: []string{"a@b.c"}})
	assert.ErrorContains(t, err, "connection refused")
}

func TestLogMailer(t *testing.T) {
	id, err := NewLogMailer(logger.Discard()).Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.NoError(t, err)
	assert.Contains(t, id, "log-")
}
