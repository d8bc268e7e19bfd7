package payment

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/cassiomorais/recurrentpayments/internal/domain/recurrentpayment"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/observability"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cassiomorais/recurrentpayments/internal/application/payment"

// PayWithDebitUseCase debits a client's checking account and records the
// resulting recurrent payment. It holds no per-request state and is safe for
// concurrent use when its collaborators are.
type PayWithDebitUseCase struct {
	validator      Validator
	balanceChecker BalanceChecker
	debitExecutor  DebitExecutor
	paymentRepo    recurrentpayment.Repository

	logger  zerolog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() uuid.UUID
}

// Option configures a PayWithDebitUseCase.
type Option func(*PayWithDebitUseCase)

func WithLogger(logger zerolog.Logger) Option {
	return func(uc *PayWithDebitUseCase) { uc.logger = logger }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(uc *PayWithDebitUseCase) { uc.metrics = m }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *PayWithDebitUseCase) {
		if tp != nil {
			uc.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock sets the time source for recurrent payment timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *PayWithDebitUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithIDGenerator sets the generator for recurrent payment IDs.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(uc *PayWithDebitUseCase) {
		if newID != nil {
			uc.newID = newID
		}
	}
}

// NewPayWithDebitUseCase creates a new PayWithDebitUseCase.
func NewPayWithDebitUseCase(
	validator Validator,
	balanceChecker BalanceChecker,
	debitExecutor DebitExecutor,
	paymentRepo recurrentpayment.Repository,
	opts ...Option,
) *PayWithDebitUseCase {
	uc := &PayWithDebitUseCase{
		validator:      validator,
		balanceChecker: balanceChecker,
		debitExecutor:  debitExecutor,
		paymentRepo:    paymentRepo,
		logger:         zerolog.Nop(),
		tracer:         otel.Tracer(tracerName),
		now:            time.Now,
		newID:          uuid.New,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs validation, balance check, debit and persistence in order,
// stopping at the first failing stage.
//
// The returned messages are empty on success. Validation, insufficient balance
// and debit failures are reported only through messages. A non-nil error means
// a fault outside those three cases: the balance check itself failed, or the
// debit went through but the recurrent payment could not be stored
// (ErrPaymentNotRecorded).
func (uc *PayWithDebitUseCase) Execute(ctx context.Context, req DebitRequest) ([]string, error) {
	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "PayWithDebit", trace.WithAttributes(
		attribute.Int("client_id", req.ClientID),
		attribute.String("value", req.Value.String()),
	))
	defer span.End()

	logger := observability.WithContext(uc.logger, map[string]any{
		"client_id": req.ClientID,
		"value":     req.Value.String(),
	})

	messages, outcome, err := uc.execute(ctx, logger, req)

	span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	uc.metrics.ObservePayment(outcome, time.Since(start))

	return messages, err
}

func (uc *PayWithDebitUseCase) execute(ctx context.Context, logger zerolog.Logger, req DebitRequest) ([]string, string, error) {
	// 1. Validate the request.
	if violations := uc.validate(ctx, req); len(violations) > 0 {
		messages := make([]string, 0, len(violations))
		for _, v := range violations {
			messages = append(messages, v.Message)
		}
		logger.Info().Strs("violations", messages).Msg("Debit request rejected")
		return messages, observability.OutcomeValidationFailed, nil
	}

	// 2. Make sure the client can afford the debit.
	sufficient, err := uc.checkBalance(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Balance check failed")
		return nil, observability.OutcomeBalanceCheckError, fmt.Errorf("check balance: %w", err)
	}
	if !sufficient {
		logger.Info().Msg("Insufficient balance for debit")
		return []string{domainErrors.ErrInsufficientBalance.Error()}, observability.OutcomeInsufficientBalance, nil
	}

	// 3. Debit the checking account. Any failure here stays here.
	transactionID, err := uc.sendDebit(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Debit execution failed")
		return []string{domainErrors.ErrDebitFailed.Error()}, observability.OutcomeDebitFailed, nil
	}
	logger = logger.With().Str("transaction_id", transactionID.String()).Logger()

	// 4. Build the receipt of the debit. From here on the money has moved, so
	// every failure is reported as an unrecorded debit.
	p, err := recurrentpayment.NewRecurrentPayment(
		req.ClientID, req.Value, transactionID,
		recurrentpayment.WithClock(uc.now),
		recurrentpayment.WithIDGenerator(uc.newID),
	)
	if err != nil {
		return nil, observability.OutcomeNotRecorded, uc.notRecorded(logger, transactionID, err)
	}

	// 5. Persist it.
	if err := uc.persist(ctx, p); err != nil {
		return nil, observability.OutcomeNotRecorded, uc.notRecorded(logger.With().Str("payment_id", p.ID.String()).Logger(), transactionID, err)
	}

	logger.Info().Str("payment_id", p.ID.String()).Msg("Recurrent payment recorded")
	return nil, observability.OutcomeCompleted, nil
}

func (uc *PayWithDebitUseCase) validate(ctx context.Context, req DebitRequest) []*domainErrors.ValidationError {
	_, done := uc.stage(ctx, observability.StageValidate)
	defer done()
	return uc.validator.Validate(req)
}

func (uc *PayWithDebitUseCase) checkBalance(ctx context.Context, req DebitRequest) (bool, error) {
	ctx, done := uc.stage(ctx, observability.StageBalanceCheck)
	defer done()
	return uc.balanceChecker.HasSufficientBalance(ctx, req.ClientID, req.Value)
}

// sendDebit converts every executor failure, panics included, into an error.
func (uc *PayWithDebitUseCase) sendDebit(ctx context.Context, req DebitRequest) (transactionID uuid.UUID, err error) {
	ctx, done := uc.stage(ctx, observability.StageDebit)
	defer done()
	defer func() {
		if r := recover(); r != nil {
			transactionID, err = uuid.Nil, fmt.Errorf("debit executor panicked: %v", r)
		}
	}()

	transactionID, err = uc.debitExecutor.SendDebit(ctx, req.ClientID, req.Value)
	if err != nil {
		return uuid.Nil, err
	}
	return transactionID, nil
}

func (uc *PayWithDebitUseCase) persist(ctx context.Context, p *recurrentpayment.RecurrentPayment) error {
	ctx, done := uc.stage(ctx, observability.StagePersist)
	defer done()
	return uc.paymentRepo.Create(ctx, p)
}

// notRecorded reports a debit that moved money without leaving a recurrent payment.
func (uc *PayWithDebitUseCase) notRecorded(logger zerolog.Logger, transactionID uuid.UUID, cause error) error {
	uc.metrics.IncUnrecordedDebit()
	logger.Error().Err(cause).Msg("Debit executed but recurrent payment was not recorded")
	return domainErrors.NewDomainError(
		"payment_not_recorded",
		fmt.Sprintf("recurrent payment for transaction %s was not stored", transactionID),
		fmt.Errorf("%w: %w", domainErrors.ErrPaymentNotRecorded, cause),
	)
}

func (uc *PayWithDebitUseCase) stage(ctx context.Context, name string) (context.Context, func()) {
	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "PayWithDebit."+name)
	return ctx, func() {
		span.End()
		uc.metrics.ObserveStage(name, time.Since(start))
	}
}
