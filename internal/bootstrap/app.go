package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cassiomorais/recurrentpayments/internal/application/payment"
	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/cassiomorais/recurrentpayments/internal/domain/recurrentpayment"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/config"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/debit"
	"github.com/cassiomorais/recurrentpayments/internal/infrastructure/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *observability.Metrics

	tracerProvider *sdktrace.TracerProvider
}

// Collaborators are the capabilities the host supplies to the debit workflow.
// Validator is optional and defaults to payment.NewRequestValidator.
type Collaborators struct {
	Validator      payment.Validator
	BalanceChecker payment.BalanceChecker
	DebitExecutor  payment.DebitExecutor
	PaymentRepo    recurrentpayment.Repository
}

// New loads configuration from the environment and builds the App, registering
// metrics on reg. A nil reg means prometheus.DefaultRegisterer, which accepts the
// collectors only once per process; pass a dedicated registry to build more than
// one App.
func New(reg prometheus.Registerer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, reg, os.Stdout)
}

func NewWithConfig(cfg *config.Config, reg prometheus.Registerer, logOutput io.Writer) (*App, error) {
	logger := observability.InitLogger(cfg.Service.Name, cfg.Observability.LogLevel, logOutput).
		With().Str("instance_id", cfg.Service.InstanceID).Logger()
	logger.Info().Msg("Starting")

	app := &App{Config: cfg, Logger: logger}

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(cfg.Service.Name, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			app.tracerProvider = tp
			logger.Info().Msg("Tracing enabled")
		}
	}

	if cfg.Observability.EnableMetrics {
		app.Metrics = observability.NewMetrics(cfg.Observability.MetricsNamespace, reg)
		logger.Info().Msg("Metrics initialized")
	}

	return app, nil
}

// PayWithDebit wires the debit workflow around the given collaborators.
func (a *App) PayWithDebit(c Collaborators) (*payment.PayWithDebitUseCase, error) {
	if c.BalanceChecker == nil || c.DebitExecutor == nil || c.PaymentRepo == nil {
		return nil, domainErrors.NewDomainError(
			"missing_collaborator",
			"balance checker, debit executor and payment repository are required",
			domainErrors.ErrInvalidInput,
		)
	}

	validator := c.Validator
	if validator == nil {
		validator = payment.NewRequestValidator()
	}

	logger := a.Logger.With().Str("component", "pay_with_debit").Logger()

	executor := c.DebitExecutor
	if cb := a.Config.Debit.CircuitBreaker; cb.Enabled {
		executor = debit.NewBreakerExecutor("ledger_debit", executor, cb, a.Metrics, logger)
	}

	opts := []payment.Option{
		payment.WithLogger(logger),
		payment.WithMetrics(a.Metrics),
	}
	if a.tracerProvider != nil {
		opts = append(opts, payment.WithTracerProvider(a.tracerProvider))
	}

	return payment.NewPayWithDebitUseCase(validator, c.BalanceChecker, executor, c.PaymentRepo, opts...), nil
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	if err := observability.Shutdown(ctx, a.tracerProvider); err != nil {
		return fmt.Errorf("shutdown tracer: %w", err)
	}
	a.Logger.Info().Msg("Stopped")
	return nil
}
