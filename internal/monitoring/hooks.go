package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hengadev/serialx/internal/serialxerr"
)

// ObservabilityHook is notified around each serialization.
type ObservabilityHook interface {
	// Called before the object is inspected
	OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any)

	// Called once the call returns, successfully or not
	OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any)

	// Called when the call fails
	OnError(ctx context.Context, typeName string, err error, metadata map[string]any)

	// Called when a later member overwrites the entry of an earlier one
	OnKeyCollision(ctx context.Context, typeName string, key string)
}

type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, typeName string, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnKeyCollision(ctx context.Context, typeName string, key string) {}

// LoggingObservabilityHook writes every event to a slog logger.
type LoggingObservabilityHook struct {
	logger *slog.Logger
}

// NewLoggingObservabilityHook logs through logger, or slog.Default when nil.
func NewLoggingObservabilityHook(logger *slog.Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObservabilityHook{logger: logger}
}

func (l *LoggingObservabilityHook) OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any) {
	l.logger.DebugContext(ctx, "serialization started", append(attrs(metadata), slog.String("type", typeName))...)
}

func (l *LoggingObservabilityHook) OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any) {
	args := append(attrs(metadata),
		slog.String("type", typeName),
		slog.Duration("duration", duration),
	)
	if err != nil {
		l.logger.ErrorContext(ctx, "serialization failed", append(args, slog.String("error", err.Error()))...)
		return
	}
	l.logger.DebugContext(ctx, "serialization completed", args...)
}

func (l *LoggingObservabilityHook) OnError(ctx context.Context, typeName string, err error, metadata map[string]any) {
	l.logger.DebugContext(ctx, "serialization error",
		append(attrs(metadata),
			slog.String("type", typeName),
			slog.String("error_type", ErrorType(err)),
		)...)
}

func (l *LoggingObservabilityHook) OnKeyCollision(ctx context.Context, typeName string, key string) {
	l.logger.WarnContext(ctx, "member overwrites an earlier entry",
		slog.String("type", typeName),
		slog.String("key", key),
	)
}

func attrs(metadata map[string]any) []any {
	args := make([]any, 0, len(metadata)+3)
	for k, v := range metadata {
		args = append(args, slog.Any(k, v))
	}
	return args
}

// MetricsObservabilityHook turns events into metrics.
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = &NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{collector: collector}
}

func (m *MetricsObservabilityHook) OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricSerializeStarted, map[string]string{"type": typeName})
}

func (m *MetricsObservabilityHook) OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any) {
	tags := map[string]string{"type": typeName}
	if err != nil {
		tags["status"] = "error"
		m.collector.IncrementCounter(MetricSerializeFailed, tags)
	} else {
		tags["status"] = "success"
		m.collector.IncrementCounter(MetricSerializeSucceeded, tags)
		if members, ok := metadata["members"].(int); ok {
			m.collector.RecordValue(MetricMembers, float64(members), map[string]string{"type": typeName})
		}
	}
	m.collector.RecordTiming(MetricSerializeDuration, duration, tags)
}

func (m *MetricsObservabilityHook) OnError(ctx context.Context, typeName string, err error, metadata map[string]any) {
	m.collector.IncrementCounter(MetricErrors, map[string]string{
		"type":       typeName,
		"error_type": ErrorType(err),
	})
}

func (m *MetricsObservabilityHook) OnKeyCollision(ctx context.Context, typeName string, key string) {
	m.collector.IncrementCounter(MetricCollisions, map[string]string{"type": typeName, "key": key})
}

// CompositeObservabilityHook fans every event out to several hooks in order.
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return &CompositeObservabilityHook{hooks: hooks}
}

func (c *CompositeObservabilityHook) OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnSerializeStart(ctx, typeName, metadata)
	}
}

func (c *CompositeObservabilityHook) OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnSerializeComplete(ctx, typeName, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, typeName string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, typeName, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnKeyCollision(ctx context.Context, typeName string, key string) {
	for _, hook := range c.hooks {
		hook.OnKeyCollision(ctx, typeName, key)
	}
}

// ErrorType classifies err for logs and metric tags.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, serialxerr.ErrNullInput), errors.Is(err, serialxerr.ErrNotStruct):
		return "input"
	case errors.Is(err, serialxerr.ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, serialxerr.ErrInvalidTag),
		errors.Is(err, serialxerr.ErrInvalidMethod),
		errors.Is(err, serialxerr.ErrInvalidConvention),
		errors.Is(err, serialxerr.ErrAlreadyRegistered):
		return "configuration"
	case errors.Is(err, serialxerr.ErrNullValue):
		return "null_value"
	default:
		return "method"
	}
}
