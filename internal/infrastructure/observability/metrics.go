package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Debit payment outcomes, used as the "outcome" label.
const (
	OutcomeCompleted           = "completed"
	OutcomeValidationFailed    = "validation_failed"
	OutcomeInsufficientBalance = "insufficient_balance"
	OutcomeBalanceCheckError   = "balance_check_error"
	OutcomeDebitFailed         = "debit_failed"
	OutcomeNotRecorded         = "not_recorded"
)

// Pipeline stages, used as the "stage" label.
const (
	StageValidate     = "validate"
	StageBalanceCheck = "balance_check"
	StageDebit        = "debit"
	StagePersist      = "persist"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Debit payment metrics
	DebitPaymentsTotal   *prometheus.CounterVec
	DebitPaymentDuration *prometheus.HistogramVec
	DebitStageDuration   *prometheus.HistogramVec
	UnrecordedDebits     prometheus.Counter

	// Circuit breaker metrics
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		DebitPaymentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "debit_payments_total",
				Help:      "Total number of debit payment requests by outcome",
			},
			[]string{"outcome"},
		),
		DebitPaymentDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "debit_payment_duration_seconds",
				Help:      "End-to-end debit payment duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"outcome"},
		),
		DebitStageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "debit_stage_duration_seconds",
				Help:      "Duration of each debit payment stage in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		UnrecordedDebits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unrecorded_debits_total",
				Help:      "Debits executed whose recurrent payment could not be stored",
			},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
		CircuitBreakerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_requests_total",
				Help:      "Total number of circuit breaker requests",
			},
			[]string{"name", "result"},
		),
	}

	reg.MustRegister(
		m.DebitPaymentsTotal,
		m.DebitPaymentDuration,
		m.DebitStageDuration,
		m.UnrecordedDebits,
		m.CircuitBreakerState,
		m.CircuitBreakerRequests,
	)

	return m
}

// ObservePayment records the outcome of one debit payment request.
func (m *Metrics) ObservePayment(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DebitPaymentsTotal.WithLabelValues(outcome).Inc()
	m.DebitPaymentDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveStage records how long a single pipeline stage took.
func (m *Metrics) ObserveStage(stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DebitStageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// IncUnrecordedDebit counts a debit left without its recurrent payment record.
func (m *Metrics) IncUnrecordedDebit() {
	if m == nil {
		return
	}
	m.UnrecordedDebits.Inc()
}

// SetBreakerState publishes the numeric state of the named circuit breaker.
func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}

// IncBreakerRequest counts a call routed through the named circuit breaker.
func (m *Metrics) IncBreakerRequest(name, result string) {
	if m == nil {
		return
	}
	m.CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
