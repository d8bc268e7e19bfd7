package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Service: ServiceConfig{Name: "recurrent-payments", InstanceID: "rp-1"},
		Debit: DebitConfig{
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      true,
				MaxRequests:  10,
				Interval:     60 * time.Second,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:         "info",
			MetricsNamespace: "recurrent_payments",
			EnableMetrics:    true,
		},
	}
}

func TestConfig_Validate_Success(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_MissingServiceName(t *testing.T) {
	cfg := validConfig()
	cfg.Service.Name = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.name is required")
}

func TestConfig_Validate_CircuitBreaker(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cb *CircuitBreakerConfig)
		wantErr string
	}{
		{"zero max requests", func(cb *CircuitBreakerConfig) { cb.MaxRequests = 0 }, "max_requests must be positive"},
		{"zero timeout", func(cb *CircuitBreakerConfig) { cb.Timeout = 0 }, "timeout must be positive"},
		{"negative interval", func(cb *CircuitBreakerConfig) { cb.Interval = -time.Second }, "interval must not be negative"},
		{"zero failure ratio", func(cb *CircuitBreakerConfig) { cb.FailureRatio = 0 }, "failure_ratio must be in (0, 1]"},
		{"failure ratio above one", func(cb *CircuitBreakerConfig) { cb.FailureRatio = 1.5 }, "failure_ratio must be in (0, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Debit.CircuitBreaker)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_DisabledBreakerSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Debit.CircuitBreaker = CircuitBreakerConfig{Enabled: false}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_TracingRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.EnableTracing = true
	cfg.Observability.JaegerEndpoint = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jaeger_endpoint is required")
}

func TestConfig_Validate_MetricsRequireNamespace(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.MetricsNamespace = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics_namespace is required")
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Service.Name = ""
	cfg.Debit.CircuitBreaker.MaxRequests = 0
	cfg.Debit.CircuitBreaker.Timeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.name")
	assert.Contains(t, err.Error(), "max_requests")
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "recurrent-payments", cfg.Service.Name)
	assert.True(t, cfg.Debit.CircuitBreaker.Enabled)
	assert.Equal(t, uint32(10), cfg.Debit.CircuitBreaker.MaxRequests)
	assert.Equal(t, 60*time.Second, cfg.Debit.CircuitBreaker.Interval)
	assert.Equal(t, 30*time.Second, cfg.Debit.CircuitBreaker.Timeout)
	assert.InDelta(t, 0.6, cfg.Debit.CircuitBreaker.FailureRatio, 1e-9)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.EnableTracing)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RECURRENT_PAYMENTS_SERVICE_NAME", "rp-test")
	t.Setenv("RECURRENT_PAYMENTS_DEBIT_CIRCUIT_BREAKER_TIMEOUT", "5s")
	t.Setenv("RECURRENT_PAYMENTS_OBSERVABILITY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rp-test", cfg.Service.Name)
	assert.Equal(t, 5*time.Second, cfg.Debit.CircuitBreaker.Timeout)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("RECURRENT_PAYMENTS_DEBIT_CIRCUIT_BREAKER_FAILURE_RATIO", "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
