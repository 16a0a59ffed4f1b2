package config

import (
	"reflect"
	"sync"

	"github.com/hengadev/serialx/internal/serialxerr"
)

// Registry maps struct types to their declarations. Registrations are
// expected at program start; lookups are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]Declaration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]Declaration)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register records decl. A type can only be declared once.
func (r *Registry) Register(decl Declaration) error {
	t, err := StructType(decl.Type)
	if err != nil {
		return err
	}
	decl.Type = t
	decl.Methods = append([]MethodSpec(nil), decl.Methods...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t]; exists {
		return serialxerr.NewAlreadyRegisteredError(t)
	}
	r.types[t] = decl
	return nil
}

// Lookup returns the explicit registration for t, if any.
func (r *Registry) Lookup(t reflect.Type) (Declaration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decl, ok := r.types[t]
	return decl, ok
}

// Resolve finds the declaration for t: explicit registrations first, then the
// marker field tag. A type with neither is an ErrConfigurationMissing.
func (r *Registry) Resolve(t reflect.Type) (Declaration, error) {
	t, err := StructType(t)
	if err != nil {
		return Declaration{}, err
	}

	if decl, ok := r.Lookup(t); ok {
		return decl, nil
	}

	tag, ok := MarkerTag(t)
	if !ok {
		return Declaration{}, serialxerr.NewConfigurationMissingError(t)
	}
	cfg, methods, err := DecodeTag(tag)
	if err != nil {
		return Declaration{}, err
	}
	return Declaration{Type: t, Config: cfg, Methods: methods}, nil
}

// StructType dereferences pointer types and rejects anything that is not a struct.
func StructType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, serialxerr.NewNullInputError()
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, serialxerr.NewNotStructError(t)
	}
	return t, nil
}
