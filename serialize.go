package serialx

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/hengadev/serialx/internal/config"
	"github.com/hengadev/serialx/internal/document"
	"github.com/hengadev/serialx/internal/monitoring"
	"github.com/hengadev/serialx/internal/naming"
	"github.com/hengadev/serialx/internal/processor"
	"github.com/hengadev/serialx/internal/serialxerr"
	"github.com/hengadev/serialx/internal/value"
)

// Serializer renders configured structs. It is safe for concurrent use;
// per-type descriptors are built on first use and shared afterwards.
type Serializer struct {
	registry  *Registry
	processor *processor.StructProcessor
	format    value.FormatOptions
	logger    *slog.Logger
	hooks     []ObservabilityHook
	hook      ObservabilityHook
}

// New creates a Serializer reading declarations from the process-wide
// registry unless WithRegistry says otherwise.
func New(opts ...Option) (*Serializer, error) {
	s := &Serializer{
		registry: config.Default(),
		logger:   monitoring.NewDiscardLogger(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.processor = processor.NewStructProcessor(s.registry)
	switch len(s.hooks) {
	case 0:
		s.hook = &monitoring.NoOpObservabilityHook{}
	case 1:
		s.hook = s.hooks[0]
	default:
		s.hook = monitoring.NewCompositeObservabilityHook(s.hooks...)
	}
	return s, nil
}

// Serialize renders object, a configured struct or a pointer to one.
func (s *Serializer) Serialize(object any) (string, error) {
	return s.SerializeContext(context.Background(), object)
}

// SerializeContext is Serialize with a context handed to the observability
// hooks. The call itself does not block.
func (s *Serializer) SerializeContext(ctx context.Context, object any) (string, error) {
	typeName := typeNameOf(object)
	start := time.Now()
	s.hook.OnSerializeStart(ctx, typeName, nil)

	out, members, err := s.serialize(ctx, typeName, object)
	if err != nil {
		s.hook.OnError(ctx, typeName, err, nil)
	}
	s.hook.OnSerializeComplete(ctx, typeName, time.Since(start), err, map[string]any{
		"members": members,
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *Serializer) serialize(ctx context.Context, typeName string, object any) (string, int, error) {
	d, members, err := s.processor.Collect(object)
	if err != nil {
		return "", 0, err
	}

	doc := document.New(d.Config.Prettify, len(members))
	for _, m := range members {
		key := naming.Transform(d.Config.Naming, naming.Canonical(m.EffectiveName()))

		literal, err := value.Format(m.Value, s.format)
		if err != nil {
			if errors.Is(err, serialxerr.ErrNullValue) {
				return "", 0, serialxerr.NewNullValueError(typeName, m.DeclaredName)
			}
			return "", 0, err
		}

		if doc.Set(key, literal) {
			s.hook.OnKeyCollision(ctx, typeName, key)
		}
	}
	if s.format.RawStrings && !doc.Prettify() {
		// unescaped literals may carry newlines, compact output drops them
		return doc.Stripped(), doc.Len(), nil
	}
	return doc.String(), doc.Len(), nil
}

// Logger returns the logger the serializer reports to.
func (s *Serializer) Logger() *slog.Logger {
	return s.logger
}

func typeNameOf(object any) string {
	if object == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(object)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

var defaultSerializer = sync.OnceValue(func() *Serializer {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
})

// Serialize renders object with the default serializer.
func Serialize(object any) (string, error) {
	return defaultSerializer().Serialize(object)
}

// MustSerialize is like Serialize but panics on error.
func MustSerialize(object any) string {
	out, err := Serialize(object)
	if err != nil {
		panic(err)
	}
	return out
}
