package serialx

import (
	"fmt"
	"log/slog"

	"github.com/hengadev/serialx/internal/monitoring"
)

type Option func(s *Serializer) error

// WithLogger logs every serialization through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) error {
		if logger == nil {
			return fmt.Errorf("%w: logger is nil", ErrInvalidConfiguration)
		}
		s.logger = logger
		s.hooks = append(s.hooks, monitoring.NewLoggingObservabilityHook(logger))
		return nil
	}
}

// WithObservabilityHook adds hook to the hooks notified around each call.
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(s *Serializer) error {
		if hook == nil {
			return fmt.Errorf("%w: observability hook is nil", ErrInvalidConfiguration)
		}
		s.hooks = append(s.hooks, hook)
		return nil
	}
}

// WithMetricsCollector reports call counts, durations and key collisions
// to collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(s *Serializer) error {
		if collector == nil {
			return fmt.Errorf("%w: metrics collector is nil", ErrInvalidConfiguration)
		}
		s.hooks = append(s.hooks, monitoring.NewMetricsObservabilityHook(collector))
		return nil
	}
}

// WithRawStrings writes string values between quotes without escaping them.
// Compact documents then drop every newline and every run of four spaces,
// inside values too. The output is only valid JSON when no string contains a
// quote, a backslash or a control character.
func WithRawStrings() Option {
	return func(s *Serializer) error {
		s.format.RawStrings = true
		return nil
	}
}

// WithRegistry resolves explicit declarations from r instead of the
// process-wide registry.
func WithRegistry(r *Registry) Option {
	return func(s *Serializer) error {
		if r == nil {
			return fmt.Errorf("%w: registry is nil", ErrInvalidConfiguration)
		}
		s.registry = r
		return nil
	}
}

// WithConfig applies an environment configuration.
func WithConfig(cfg Config) Option {
	return func(s *Serializer) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.format.RawStrings = cfg.RawStrings
		if cfg.LogLevel != "" || cfg.LogFormat != "" {
			logger, err := cfg.Logger()
			if err != nil {
				return err
			}
			return WithLogger(logger)(s)
		}
		return nil
	}
}
