package recurrentpayment

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecurrentPayment(t *testing.T) {
	txID := uuid.New()
	before := time.Now()

	p, err := NewRecurrentPayment(10, decimal.NewFromInt(5), txID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, 10, p.ClientID)
	assert.True(t, p.Value.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, txID, p.TransactionID)
	assert.False(t, p.CreatedAt.Before(before))
}

func TestNewRecurrentPayment_FreshIDs(t *testing.T) {
	txID := uuid.New()

	first, err := NewRecurrentPayment(10, decimal.NewFromInt(5), txID)
	require.NoError(t, err)
	second, err := NewRecurrentPayment(10, decimal.NewFromInt(5), txID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestNewRecurrentPayment_WithOptions(t *testing.T) {
	fixedID := uuid.MustParse("7f1b6f5e-6a43-4c1e-9d3b-2f6d3c1a0b11")
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	p, err := NewRecurrentPayment(
		42,
		decimal.RequireFromString("19.90"),
		uuid.New(),
		WithIDGenerator(func() uuid.UUID { return fixedID }),
		WithClock(func() time.Time { return fixedTime }),
	)
	require.NoError(t, err)

	assert.Equal(t, fixedID, p.ID)
	assert.Equal(t, fixedTime, p.CreatedAt)
	assert.Equal(t, "19.9", p.Value.String())
}

func TestNewRecurrentPayment_NilOptionsKeepDefaults(t *testing.T) {
	p, err := NewRecurrentPayment(1, decimal.NewFromInt(1), uuid.New(), WithClock(nil), WithIDGenerator(nil))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewRecurrentPayment_RequiresTransactionID(t *testing.T) {
	p, err := NewRecurrentPayment(10, decimal.NewFromInt(5), uuid.Nil)

	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrInvalidTransactionID))

	var domainErr *domainErrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "invalid_transaction_id", domainErr.Code)
}
