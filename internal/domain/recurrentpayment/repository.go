package recurrentpayment

import "context"

// Repository defines the interface for recurrent payment persistence
type Repository interface {
	// Create durably stores a recurrent payment. Ownership of the record passes
	// to the repository once Create is called.
	Create(ctx context.Context, payment *RecurrentPayment) error
}
