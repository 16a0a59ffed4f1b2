package serialx

import (
	"reflect"

	"github.com/hengadev/serialx/internal/config"
	"github.com/hengadev/serialx/internal/naming"
)

type (
	// TypeConfig is the serialization configuration of a type.
	TypeConfig = config.TypeConfig
	// MethodSpec names a method emitted as a virtual field.
	MethodSpec = config.MethodSpec
	// Convention is the naming convention applied to output keys.
	Convention = naming.Convention
	// Registry holds explicit type declarations.
	Registry = config.Registry
)

const (
	CamelCase  = naming.CamelCase
	PascalCase = naming.PascalCase
	SnakeCase  = naming.SnakeCase
	KebabCase  = naming.KebabCase
)

// DefaultTypeConfig is camel case keys with pretty output.
func DefaultTypeConfig() TypeConfig {
	return config.DefaultTypeConfig()
}

// ParseConvention accepts camel_case, pascal_case, snake_case and kebab_case,
// in any case and with or without the _case suffix.
func ParseConvention(s string) (Convention, error) {
	return naming.ParseConvention(s)
}

// Method declares a virtual field. An empty customName keeps the method name.
func Method(name, customName string) MethodSpec {
	return MethodSpec{Name: name, CustomName: customName}
}

// NewRegistry returns an empty registry, for use with WithRegistry.
func NewRegistry() *Registry {
	return config.NewRegistry()
}

// Register declares T in the process-wide registry. A registration takes
// precedence over a marker field tag on the same type.
func Register[T any](cfg TypeConfig, methods ...MethodSpec) error {
	return RegisterIn[T](config.Default(), cfg, methods...)
}

// MustRegister is like Register but panics on error. It is meant for package
// initialization and generated code.
func MustRegister[T any](cfg TypeConfig, methods ...MethodSpec) {
	if err := Register[T](cfg, methods...); err != nil {
		panic(err)
	}
}

// RegisterIn declares T in r.
func RegisterIn[T any](r *Registry, cfg TypeConfig, methods ...MethodSpec) error {
	return RegisterType(r, reflect.TypeFor[T](), cfg, methods...)
}

// RegisterType declares t in r, or in the process-wide registry when r is nil.
func RegisterType(r *Registry, t reflect.Type, cfg TypeConfig, methods ...MethodSpec) error {
	if r == nil {
		r = config.Default()
	}
	return r.Register(config.Declaration{
		Type:    t,
		Config:  cfg,
		Methods: methods,
	})
}
