// Package config holds the type-level serialization configuration and the
// process-wide registry that resolves it for a given type.
package config

import (
	"reflect"
	"strings"

	"github.com/hengadev/serialx/internal/naming"
)

// TypeConfig is the serialization configuration attached to a type.
type TypeConfig struct {
	Naming   naming.Convention
	Prettify bool
}

// DefaultTypeConfig returns camel-case keys and pretty output.
func DefaultTypeConfig() TypeConfig {
	return TypeConfig{Naming: naming.CamelCase, Prettify: true}
}

// MethodSpec marks an exported zero-argument method as a virtual field.
// A blank CustomName keeps the method identifier as the key.
type MethodSpec struct {
	Name       string
	CustomName string
}

// Key returns the name the method contributes before naming conventions apply.
func (m MethodSpec) Key() string {
	if strings.TrimSpace(m.CustomName) == "" {
		return m.Name
	}
	return m.CustomName
}

// Declaration binds a struct type to its configuration and virtual fields.
type Declaration struct {
	Type    reflect.Type
	Config  TypeConfig
	Methods []MethodSpec
}
