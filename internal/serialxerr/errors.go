package serialxerr

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// Input errors
	ErrNullInput = errors.New("null input")
	ErrNullValue = errors.New("null value")
	ErrNotStruct = errors.New("not a struct")

	// Configuration errors
	ErrConfigurationMissing = errors.New("serialization configuration missing")
	ErrAlreadyRegistered    = errors.New("type already registered")
	ErrInvalidTag           = errors.New("invalid serialx tag")
	ErrInvalidMethod        = errors.New("invalid serializable method")
	ErrInvalidConvention    = errors.New("invalid naming convention")
)

func NewNullInputError() error {
	return fmt.Errorf("%w: enter with non nil object", ErrNullInput)
}

func NewNotStructError(t reflect.Type) error {
	return fmt.Errorf("%w: serialx only serializes structs, got %s", ErrNotStruct, t)
}

func NewConfigurationMissingError(t reflect.Type) error {
	return fmt.Errorf("%w: to serialize %s register it with serialx.Register or annotate it with a serialx-tagged `_ struct{}` marker field",
		ErrConfigurationMissing, t)
}

func NewAlreadyRegisteredError(t reflect.Type) error {
	return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
}

func NewInvalidTagError(tag string, details string) error {
	return fmt.Errorf("%w: '%s': %s", ErrInvalidTag, tag, details)
}

func NewInvalidMethodError(t reflect.Type, cause error) error {
	return fmt.Errorf("%w on %s: %w", ErrInvalidMethod, t, cause)
}

func NewInvalidConventionError(name string) error {
	return fmt.Errorf("%w: '%s', supported values: camel_case, pascal_case, snake_case, kebab_case", ErrInvalidConvention, name)
}

func NewNullValueError(typeName, memberName string) error {
	return fmt.Errorf("%w: member '%s' of %s is nil and cannot be formatted", ErrNullValue, memberName, typeName)
}
