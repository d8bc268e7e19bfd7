package recurrentpayment

import (
	"time"

	"github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurrentPayment is the durable receipt of a successful checking-account debit.
// It is created right after the debit and never mutated afterwards.
type RecurrentPayment struct {
	ID            uuid.UUID
	ClientID      int
	Value         decimal.Decimal
	TransactionID uuid.UUID
	CreatedAt     time.Time
}

// Option customizes how a RecurrentPayment is built.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator sets the generator used for the payment ID.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// NewRecurrentPayment records the debit identified by transactionID.
func NewRecurrentPayment(clientID int, value decimal.Decimal, transactionID uuid.UUID, opts ...Option) (*RecurrentPayment, error) {
	if transactionID == uuid.Nil {
		return nil, errors.NewDomainError(
			"invalid_transaction_id",
			"recurrent payment requires the debit transaction id",
			errors.ErrInvalidTransactionID,
		)
	}

	o := options{now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		opt(&o)
	}

	return &RecurrentPayment{
		ID:            o.newID(),
		ClientID:      clientID,
		Value:         value,
		TransactionID: transactionID,
		CreatedAt:     o.now(),
	}, nil
}
