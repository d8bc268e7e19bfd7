package debit

import (
	"context"
	"errors"
	"fmt"

	"github.com/cassiomorais/recurrentpayments/internal/application/payment"
	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/config"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/observability"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerExecutor guards a payment.DebitExecutor with a circuit breaker. While the
// breaker is open, debits fail fast with ErrLedgerUnavailable and never reach the
// ledger. It never retries.
type BreakerExecutor struct {
	name    string
	next    payment.DebitExecutor
	breaker *gobreaker.CircuitBreaker[uuid.UUID]
	metrics *observability.Metrics
}

var _ payment.DebitExecutor = (*BreakerExecutor)(nil)

func NewBreakerExecutor(
	name string,
	next payment.DebitExecutor,
	cfg config.CircuitBreakerConfig,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *BreakerExecutor {
	e := &BreakerExecutor{name: name, next: next, metrics: metrics}

	e.breaker = gobreaker.NewCircuitBreaker[uuid.UUID](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 || counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, stateValue(to))
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Debit circuit breaker changed state")
		},
		// A caller giving up says nothing about the ledger's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	metrics.SetBreakerState(name, stateValue(gobreaker.StateClosed))

	return e
}

func (e *BreakerExecutor) SendDebit(ctx context.Context, clientID int, value decimal.Decimal) (uuid.UUID, error) {
	txID, err := e.breaker.Execute(func() (uuid.UUID, error) {
		return e.next.SendDebit(ctx, clientID, value)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		e.metrics.IncBreakerRequest(e.name, "rejected")
		return uuid.Nil, fmt.Errorf("%w: %w", domainErrors.ErrLedgerUnavailable, err)
	case err != nil:
		e.metrics.IncBreakerRequest(e.name, "failure")
		return uuid.Nil, err
	default:
		e.metrics.IncBreakerRequest(e.name, "success")
		return txID, nil
	}
}

// State reports the current breaker state.
func (e *BreakerExecutor) State() gobreaker.State {
	return e.breaker.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
