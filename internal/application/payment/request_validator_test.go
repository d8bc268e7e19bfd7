package payment_test

import (
	"testing"

	paymentApp "github.com/cassiomorais/recurrentpayments/internal/application/payment"
	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/cassiomorais/recurrentpayments/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator_Valid(t *testing.T) {
	v := paymentApp.NewRequestValidator()

	tests := []struct {
		name  string
		value string
	}{
		{"whole amount", "5"},
		{"cents", "19.90"},
		{"trailing zeros", "7.500"},
		{"smallest amount", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, v.Validate(testutil.NewDebitRequest(10, tt.value)))
		})
	}
}

func TestRequestValidator_Violations(t *testing.T) {
	v := paymentApp.NewRequestValidator()

	tests := []struct {
		name     string
		req      paymentApp.DebitRequest
		expected []*domainErrors.ValidationError
	}{
		{
			name: "empty request",
			req:  paymentApp.DebitRequest{},
			expected: []*domainErrors.ValidationError{
				{Field: "client_id", Message: "client_id is required"},
				{Field: "value", Message: "value must be greater than 0"},
			},
		},
		{
			name: "negative client id",
			req:  testutil.NewDebitRequest(-3, "5"),
			expected: []*domainErrors.ValidationError{
				{Field: "client_id", Message: "client_id must be greater than 0"},
			},
		},
		{
			name: "negative value",
			req:  testutil.NewDebitRequest(10, "-5"),
			expected: []*domainErrors.ValidationError{
				{Field: "value", Message: "value must be greater than 0"},
			},
		},
		{
			name: "fractions of a cent",
			req:  testutil.NewDebitRequest(10, "5.001"),
			expected: []*domainErrors.ValidationError{
				{Field: "value", Message: "value must have at most 2 decimal places"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.Validate(tt.req))
		})
	}
}

func TestRequestValidator_ViolationsMatchSentinel(t *testing.T) {
	v := paymentApp.NewRequestValidator()

	violations := v.Validate(paymentApp.DebitRequest{ClientID: 1, Value: decimal.Zero})
	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], domainErrors.ErrValidationFailed)
}
