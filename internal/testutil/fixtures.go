package testutil

import (
	"time"

	"github.com/cassiomorais/recurrentpayments/internal/application/payment"
	"github.com/cassiomorais/recurrentpayments/internal/domain/recurrentpayment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewDebitRequest builds a request from a decimal string such as "5" or "19.90".
func NewDebitRequest(clientID int, value string) payment.DebitRequest {
	return payment.DebitRequest{
		ClientID: clientID,
		Value:    decimal.RequireFromString(value),
	}
}

func NewTestRecurrentPayment(clientID int, value string) *recurrentpayment.RecurrentPayment {
	return &recurrentpayment.RecurrentPayment{
		ID:            uuid.New(),
		ClientID:      clientID,
		Value:         decimal.RequireFromString(value),
		TransactionID: uuid.New(),
		CreatedAt:     time.Now(),
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequentialIDs returns a generator yielding ids in order, then fresh random ones.
// It is not safe for concurrent use.
func SequentialIDs(ids ...uuid.UUID) func() uuid.UUID {
	next := 0
	return func() uuid.UUID {
		if next < len(ids) {
			id := ids[next]
			next++
			return id
		}
		return uuid.New()
	}
}
