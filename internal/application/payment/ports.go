package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebitRequest asks for value to be debited from the client's checking account.
// Validity is decided by the injected Validator, not by the type.
type DebitRequest struct {
	ClientID int             `json:"client_id"`
	Value    decimal.Decimal `json:"value"`
}

// Validator checks a debit request. An empty result means the request is valid.
// Implementations must be synchronous and free of side effects.
type Validator interface {
	Validate(req DebitRequest) []*domainErrors.ValidationError
}

// BalanceChecker answers whether a client can afford a debit.
type BalanceChecker interface {
	HasSufficientBalance(ctx context.Context, clientID int, value decimal.Decimal) (bool, error)
}

// DebitExecutor debits a checking account through the ledger and returns the
// ledger's transaction id.
type DebitExecutor interface {
	SendDebit(ctx context.Context, clientID int, value decimal.Decimal) (uuid.UUID, error)
}
