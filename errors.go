package serialx

import (
	"errors"

	"github.com/hengadev/serialx/internal/serialxerr"
)

var (
	// Input errors
	ErrNullInput = serialxerr.ErrNullInput
	ErrNotStruct = serialxerr.ErrNotStruct
	ErrNullValue = serialxerr.ErrNullValue

	// Configuration errors
	ErrConfigurationMissing = serialxerr.ErrConfigurationMissing
	ErrAlreadyRegistered    = serialxerr.ErrAlreadyRegistered
	ErrInvalidTag           = serialxerr.ErrInvalidTag
	ErrInvalidMethod        = serialxerr.ErrInvalidMethod
	ErrInvalidConvention    = serialxerr.ErrInvalidConvention

	// Environment configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsConfigurationError returns true if the error comes from a missing or
// malformed type declaration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfigurationMissing) ||
		errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrInvalidTag) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrInvalidConvention)
}

// IsInputError returns true if the object handed to Serialize is unusable.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNullInput) ||
		errors.Is(err, ErrNotStruct)
}

// IsValueError returns true if a member value could not be formatted.
func IsValueError(err error) bool {
	return errors.Is(err, ErrNullValue)
}
