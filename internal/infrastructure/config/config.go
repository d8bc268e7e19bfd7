package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service       ServiceConfig       `mapstructure:"service"`
	Debit         DebitConfig         `mapstructure:"debit"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServiceConfig struct {
	Name       string `mapstructure:"name"`
	InstanceID string `mapstructure:"instance_id"`
}

type DebitConfig struct {
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// CircuitBreakerConfig controls the breaker placed in front of the debit executor.
type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MinRequests  uint32        `mapstructure:"min_requests"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

type ObservabilityConfig struct {
	LogLevel         string `mapstructure:"log_level"`
	JaegerEndpoint   string `mapstructure:"jaeger_endpoint"`
	MetricsNamespace string `mapstructure:"metrics_namespace"`
	EnableMetrics    bool   `mapstructure:"enable_metrics"`
	EnableTracing    bool   `mapstructure:"enable_tracing"`
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RECURRENT_PAYMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/recurrent-payments")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Service.Name == "" {
		errs = append(errs, fmt.Errorf("service.name is required"))
	}

	if cb := c.Debit.CircuitBreaker; cb.Enabled {
		if cb.MaxRequests == 0 {
			errs = append(errs, fmt.Errorf("debit.circuit_breaker.max_requests must be positive"))
		}
		if cb.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("debit.circuit_breaker.timeout must be positive"))
		}
		if cb.Interval < 0 {
			errs = append(errs, fmt.Errorf("debit.circuit_breaker.interval must not be negative"))
		}
		if cb.FailureRatio <= 0 || cb.FailureRatio > 1 {
			errs = append(errs, fmt.Errorf("debit.circuit_breaker.failure_ratio must be in (0, 1], got %v", cb.FailureRatio))
		}
	}

	if c.Observability.EnableTracing && c.Observability.JaegerEndpoint == "" {
		errs = append(errs, fmt.Errorf("observability.jaeger_endpoint is required when tracing is enabled"))
	}
	if c.Observability.EnableMetrics && c.Observability.MetricsNamespace == "" {
		errs = append(errs, fmt.Errorf("observability.metrics_namespace is required when metrics are enabled"))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Service defaults
	v.SetDefault("service.name", "recurrent-payments")
	v.SetDefault("service.instance_id", "recurrent-payments-1")

	// Debit circuit breaker defaults
	v.SetDefault("debit.circuit_breaker.enabled", true)
	v.SetDefault("debit.circuit_breaker.max_requests", 10)
	v.SetDefault("debit.circuit_breaker.interval", "60s")
	v.SetDefault("debit.circuit_breaker.timeout", "30s")
	v.SetDefault("debit.circuit_breaker.min_requests", 10)
	v.SetDefault("debit.circuit_breaker.failure_ratio", 0.6)

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.metrics_namespace", "recurrent_payments")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)
}
