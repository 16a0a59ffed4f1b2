package serialx

import "github.com/hengadev/serialx/internal/monitoring"

type (
	// MetricsCollector receives counters and timings about serializations.
	MetricsCollector = monitoring.MetricsCollector
	// ObservabilityHook is notified around each serialization.
	ObservabilityHook = monitoring.ObservabilityHook

	NoOpMetricsCollector     = monitoring.NoOpMetricsCollector
	NoOpObservabilityHook    = monitoring.NoOpObservabilityHook
	InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector
)

// Metric names reported through WithMetricsCollector.
const (
	MetricSerializeStarted   = monitoring.MetricSerializeStarted
	MetricSerializeSucceeded = monitoring.MetricSerializeSucceeded
	MetricSerializeFailed    = monitoring.MetricSerializeFailed
	MetricSerializeDuration  = monitoring.MetricSerializeDuration
	MetricMembers            = monitoring.MetricMembers
	MetricCollisions         = monitoring.MetricCollisions
	MetricErrors             = monitoring.MetricErrors
)

// NewInMemoryMetricsCollector returns a collector keeping every metric in
// memory, for tests and local inspection.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}
