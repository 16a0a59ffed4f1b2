package processor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/serialx/internal/config"
	"github.com/hengadev/serialx/internal/serialxerr"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// instance is the value being serialized together with a pointer to it.
// ptr is the caller's own pointer when one was passed, so that tagged methods
// observe and mutate the real instance.
type instance struct {
	elem reflect.Value
	ptr  reflect.Value
}

// validateObjectForProcessing rejects nil input and non-struct values, and
// returns an addressable view of the object.
func validateObjectForProcessing(object any) (instance, error) {
	if object == nil {
		return instance{}, serialxerr.NewNullInputError()
	}

	v := reflect.ValueOf(object)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return instance{}, serialxerr.NewNullInputError()
		}
		if v.Elem().Kind() != reflect.Pointer {
			break
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Pointer {
		if v.Elem().Kind() != reflect.Struct {
			return instance{}, serialxerr.NewNotStructError(v.Type())
		}
		return instance{elem: v.Elem(), ptr: v}, nil
	}

	if v.Kind() != reflect.Struct {
		return instance{}, serialxerr.NewNotStructError(v.Type())
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return instance{elem: ptr.Elem(), ptr: ptr}, nil
}

// validateMethods checks every method spec against the pointer method set of
// t and reports all problems at once.
func validateMethods(t reflect.Type, specs []config.MethodSpec) ([]methodAccessor, error) {
	errs := make(errsx.Map)
	ptrType := reflect.PointerTo(t)
	seen := make(map[string]bool, len(specs))
	accessors := make([]methodAccessor, 0, len(specs))

	for _, spec := range specs {
		if seen[spec.Name] {
			errs.Set(spec.Name, fmt.Errorf("method %s is declared more than once", spec.Name))
			continue
		}
		seen[spec.Name] = true

		method, ok := ptrType.MethodByName(spec.Name)
		if !ok {
			errs.Set(spec.Name, fmt.Errorf("method %s does not exist or is not exported", spec.Name))
			continue
		}

		mt := method.Type
		// the receiver is the first input
		if mt.NumIn() != 1 {
			errs.Set(spec.Name, fmt.Errorf("method %s must take no arguments, takes %d", spec.Name, mt.NumIn()-1))
			continue
		}
		switch {
		case mt.NumOut() == 0:
			errs.Set(spec.Name, fmt.Errorf("method %s must return a value", spec.Name))
			continue
		case mt.NumOut() > 2:
			errs.Set(spec.Name, fmt.Errorf("method %s must return a value and an optional error, returns %d values", spec.Name, mt.NumOut()))
			continue
		case mt.NumOut() == 2 && mt.Out(1) != errorType:
			errs.Set(spec.Name, fmt.Errorf("method %s second result must be error, got %s", spec.Name, mt.Out(1)))
			continue
		}

		accessors = append(accessors, methodAccessor{
			name:       spec.Name,
			customName: strings.TrimSpace(spec.CustomName),
			index:      method.Index,
			hasError:   mt.NumOut() == 2,
		})
	}

	if err := errs.AsError(); err != nil {
		return nil, serialxerr.NewInvalidMethodError(t, err)
	}
	return accessors, nil
}
