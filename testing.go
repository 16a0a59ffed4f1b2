package serialx

// This file provides test utilities for packages serializing their own types.

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// TestSerializerOptions configures NewTestSerializer.
type TestSerializerOptions struct {
	Registry   *Registry // If nil, an empty registry private to the test
	RawStrings bool
	Hook       ObservabilityHook // Added after the metrics hook when set
}

// NewTestSerializer creates a Serializer isolated from the process-wide
// registry, together with the collector receiving its metrics.
func NewTestSerializer(t testing.TB, options ...*TestSerializerOptions) (*Serializer, *InMemoryMetricsCollector) {
	t.Helper()

	opts := &TestSerializerOptions{}
	if len(options) > 0 && options[0] != nil {
		opts = options[0]
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}

	metrics := NewInMemoryMetricsCollector()
	serializerOpts := []Option{
		WithRegistry(opts.Registry),
		WithMetricsCollector(metrics),
	}
	if opts.RawStrings {
		serializerOpts = append(serializerOpts, WithRawStrings())
	}
	if opts.Hook != nil {
		serializerOpts = append(serializerOpts, WithObservabilityHook(opts.Hook))
	}

	s, err := New(serializerOpts...)
	if err != nil {
		t.Fatalf("create test serializer: %v", err)
	}
	return s, metrics
}

// ObservabilityHookMock is a testify mock of ObservabilityHook.
type ObservabilityHookMock struct {
	mock.Mock
}

func NewObservabilityHookMock() *ObservabilityHookMock {
	return &ObservabilityHookMock{}
}

func (m *ObservabilityHookMock) OnSerializeStart(ctx context.Context, typeName string, metadata map[string]any) {
	m.Called(ctx, typeName, metadata)
}

func (m *ObservabilityHookMock) OnSerializeComplete(ctx context.Context, typeName string, duration time.Duration, err error, metadata map[string]any) {
	m.Called(ctx, typeName, duration, err, metadata)
}

func (m *ObservabilityHookMock) OnError(ctx context.Context, typeName string, err error, metadata map[string]any) {
	m.Called(ctx, typeName, err, metadata)
}

func (m *ObservabilityHookMock) OnKeyCollision(ctx context.Context, typeName string, key string) {
	m.Called(ctx, typeName, key)
}
