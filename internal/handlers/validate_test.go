package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProductFieldsAccepts(t *testing.T) {
	price, errs := validateProductFields("Coffee mug", "MUGBLU01", "12.50")
	assert.Empty(t, errs)
	assert.Equal(t, 12.50, price)
}

func TestValidateProductFieldsPresence(t *testing.T) {
	_, errs := validateProductFields("", "", "")
	assert.Equal(t, map[string]string{
		"name":  "This field is required.",
		"sku":   "This field is required.",
		"price": "This field is required.",
	}, errs)
}

func TestValidateProductFieldsPresenceShortCircuits(t *testing.T) {
	// With a missing field, only presence errors come back even though the
	// submitted sku would also fail its own rule.
	_, errs := validateProductFields("", "x", "12")
	assert.Equal(t, map[string]string{"name": "This field is required."}, errs)
}

func TestValidateProductFieldsName(t *testing.T) {
	longName := strings.Repeat("a", 101)
	_, errs := validateProductFields(longName, "MUGBLU01", "1")
	assert.Equal(t, "Name can't be longer than 100 characters.", errs["name"])

	_, errs = validateProductFields(strings.Repeat("a", 100), "MUGBLU01", "1")
	assert.Empty(t, errs)
}

func TestValidateProductFieldsSKU(t *testing.T) {
	tests := []struct {
		sku string
		ok  bool
	}{
		{"ABCD1234", true},
		{"abcd1234", true},
		{"ABC_1234", true}, // underscore is a word character
		{"ABC1234", false}, // 7 chars
		{"ABCD12345", false},
		{"ABCD 123", false},
		{"ABCD-123", false},
		{"ABCD123!", false},
	}
	for _, tc := range tests {
		_, errs := validateProductFields("Name", tc.sku, "1")
		if tc.ok {
			assert.NotContains(t, errs, "sku", "sku %q should be accepted", tc.sku)
		} else {
			assert.Equal(t, "Sku must contain 8 alphanumeric characters", errs["sku"], "sku %q", tc.sku)
		}
	}
}

func TestValidateProductFieldsPrice(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"0", ""},
		{"0.00", ""},
		{"9999.99", ""},
		{"10000", "Price can't be negative or more than $9999.99"},
		{"10000.01", "Price can't be negative or more than $9999.99"},
		{"-0.01", "Price can't be negative or more than $9999.99"},
		{"abc", "Invalid price format."},
	}
	for _, tc := range tests {
		_, errs := validateProductFields("Name", "ABCD1234", tc.price)
		if tc.want == "" {
			assert.NotContains(t, errs, "price", "price %q should be accepted", tc.price)
		} else {
			assert.Equal(t, tc.want, errs["price"], "price %q", tc.price)
		}
	}
}

func TestValidateProductFieldsIndependentErrors(t *testing.T) {
	_, errs := validateProductFields(strings.Repeat("a", 101), "bad", "20000")
	assert.Len(t, errs, 3)
	assert.Equal(t, "Name can't be longer than 100 characters.", errs["name"])
	assert.Equal(t, "Sku must contain 8 alphanumeric characters", errs["sku"])
	assert.Equal(t, "Price can't be negative or more than $9999.99", errs["price"])
}
