package validation_test

import (
	"testing"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() models.CustomerData {
	return models.CustomerData{
		Name:    "Asha Kumari",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Station Road",
		City:    "Darbhanga",
		State:   "Bihar",
		Pincode: "846004",
	}
}

func TestValidateCustomer_OK(t *testing.T) {
	assert.Empty(t, validation.ValidateCustomer(validCustomer()))
}

func TestValidateCustomer_AllEmpty(t *testing.T) {
	errs := validation.ValidateCustomer(models.CustomerData{})
	require.Len(t, errs, 7)
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "PIN code is required", errs["pincode"])
}

func TestValidateCustomer_Phone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"5876543210", false},
		{"987654321", false},
		{"98765432100", false},
		{"98765abcde", false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			c := validCustomer()
			c.Phone = tc.phone
			errs := validation.ValidateCustomer(c)
			if tc.ok {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, "Please enter a valid 10-digit phone number", errs["phone"])
			}
		})
	}
}

func TestValidateCustomer_Pincode(t *testing.T) {
	for _, pin := range []string{"84600", "8460041", "84600a"} {
		c := validCustomer()
		c.Pincode = pin
		errs := validation.ValidateCustomer(c)
		assert.Equal(t, "Please enter a valid 6-digit PIN code", errs["pincode"], pin)
	}
}

func TestValidateCustomer_Email(t *testing.T) {
	c := validCustomer()
	c.Email = "not-an-email"
	errs := validation.ValidateCustomer(c)
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
}

func TestValidateCustomer_WhitespaceOnly(t *testing.T) {
	c := validCustomer()
	c.City = "   "
	errs := validation.ValidateCustomer(c)
	assert.Equal(t, "City is required", errs["city"])
}

type request struct {
	Customer models.CustomerData `json:"customerData"`
	Amount   int64               `json:"amount" validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	req := request{Customer: validCustomer(), Amount: 0}
	req.Customer.Email = "bad"

	err := validation.ValidateStruct(req)
	require.Error(t, err)

	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "must be greater than 0", fields["amount"])
	assert.Equal(t, "must be a valid email", fields["customerData.email"])

	assert.NoError(t, validation.ValidateStruct(request{Customer: validCustomer(), Amount: 10}))
}
