package codegen

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/types"
	"strconv"
	"strings"
	"unicode"

	"github.com/hengadev/serialx/internal/config"
	"github.com/hengadev/serialx/internal/naming"
)

// DirectiveValidator checks directives against the declarations they
// annotate.
type DirectiveValidator struct{}

func NewDirectiveValidator() *DirectiveValidator {
	return &DirectiveValidator{}
}

// ValidateType decodes the options of a type directive and checks that the
// annotated type can be registered.
func (dv *DirectiveValidator) ValidateType(t TypeInfo, ts *ast.TypeSpec) (config.TypeConfig, []string) {
	var errors []string

	if !t.IsStruct {
		errors = append(errors, "only struct types can be serialized")
	}
	if ts != nil && ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		errors = append(errors, "generic types cannot be registered")
	}

	options, err := config.ParseOptions(t.Options)
	if err != nil {
		return config.DefaultTypeConfig(), append(errors, err.Error())
	}

	cfg := config.DefaultTypeConfig()
	for _, opt := range options {
		switch opt.Key {
		case config.OptionNaming:
			convention, err := naming.ParseConvention(opt.Value)
			if err != nil {
				errors = append(errors, err.Error())
				continue
			}
			cfg.Naming = convention
		case config.OptionPrettify:
			prettify, err := strconv.ParseBool(cmp.Or(opt.Value, "true"))
			if err != nil {
				errors = append(errors, fmt.Sprintf("prettify must be a boolean, got '%s'", opt.Value))
				continue
			}
			cfg.Prettify = prettify
		case config.OptionMethod:
			errors = append(errors, fmt.Sprintf("option '%s' is not supported here, annotate the method with //%s", opt.Key, MethodDirective))
		default:
			errors = append(errors, fmt.Sprintf("unknown option '%s'", opt.Key))
		}
	}
	return cfg, errors
}

// ValidateMethod checks that a method can be called as a virtual field:
// exported, no parameters, one result optionally followed by an error.
func (dv *DirectiveValidator) ValidateMethod(m MethodInfo, sig *types.Signature) []string {
	var errors []string

	if !ast.IsExported(m.Name) {
		errors = append(errors, "method must be exported")
	}
	if strings.ContainsFunc(m.CustomName, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\\' || unicode.IsControl(r)
	}) {
		errors = append(errors, fmt.Sprintf("invalid custom name '%s', expected a single word", m.CustomName))
	}

	if sig == nil {
		return append(errors, "method signature could not be resolved")
	}

	if n := sig.Params().Len(); n != 0 {
		errors = append(errors, fmt.Sprintf("method must take no arguments, takes %d", n))
	}

	results := sig.Results()
	switch {
	case results.Len() == 0:
		errors = append(errors, "method must return a value")
	case results.Len() > 2:
		errors = append(errors, fmt.Sprintf("method must return a value and an optional error, returns %d values", results.Len()))
	case results.Len() == 2 && !isError(results.At(1).Type()):
		errors = append(errors, fmt.Sprintf("second result must be error, got %s", results.At(1).Type()))
	}

	return errors
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// validateMethodNames reports virtual fields of one type that would emit
// the same key.
func validateMethodNames(methods []MethodInfo) []string {
	var errors []string
	seen := make(map[string]string, len(methods))
	for _, m := range methods {
		name := m.CustomName
		if name == "" {
			name = m.Name
		}
		key := naming.Canonical(name)
		if previous, ok := seen[key]; ok {
			errors = append(errors, fmt.Sprintf("methods %s and %s both emit '%s'", previous, m.Name, key))
			continue
		}
		seen[key] = m.Name
	}
	return errors
}
