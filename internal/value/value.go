// Package value models member values as a closed tagged union and renders
// each kind as a document literal.
package value

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind is the closed set of value shapes the formatter knows how to render.
type Kind uint8

const (
	Null Kind = iota
	String
	Int
	Uint
	Float
	Bool
	Other
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Value is a point-in-time snapshot of a field or method result.
type Value struct {
	kind  Kind
	str   string
	i     int64
	u     uint64
	f     float64
	bits  int
	b     bool
	other any
}

func NullOf() Value           { return Value{kind: Null} }
func StringOf(s string) Value { return Value{kind: String, str: s} }
func IntOf(i int64) Value     { return Value{kind: Int, i: i} }
func UintOf(u uint64) Value   { return Value{kind: Uint, u: u} }
func BoolOf(b bool) Value     { return Value{kind: Bool, b: b} }

// FloatOf records f with the bit size it was declared with; anything other
// than 32 is treated as 64.
func FloatOf(f float64, bits int) Value {
	if bits != 32 {
		bits = 64
	}
	return Value{kind: Float, f: f, bits: bits}
}

// OtherOf wraps a value rendered through its own textual representation.
// A nil argument yields a Null value.
func OtherOf(v any) Value {
	if v == nil {
		return NullOf()
	}
	return Value{kind: Other, other: v}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Of classifies rv. Nil pointers, interfaces, maps, slices, funcs and chans
// are Null, and so is an interface holding a nil pointer. Interfaces are
// classified by their dynamic value. Non-nil pointers are followed unless the
// pointer type has a textual representation. Types implementing fmt.Stringer
// or error are Other, except string kinds which are always String.
func Of(rv reflect.Value) Value {
	if !rv.IsValid() {
		return NullOf()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return NullOf()
		}
	}

	if rv.Kind() == reflect.Interface {
		return Of(rv.Elem())
	}

	if rv.Kind() != reflect.String && hasText(rv.Type()) && rv.CanInterface() {
		return OtherOf(rv.Interface())
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return Of(rv.Elem())
	case reflect.String:
		return StringOf(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntOf(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return UintOf(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FloatOf(rv.Float(), rv.Type().Bits())
	case reflect.Bool:
		return BoolOf(rv.Bool())
	}

	if rv.CanInterface() {
		return OtherOf(rv.Interface())
	}
	return OtherOf(rv.String())
}

func hasText(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType)
}

// Literal renders v without quoting or escaping. Null values have no literal
// and report ok=false.
func (v Value) Literal() (literal string, ok bool) {
	switch v.kind {
	case String:
		return v.str, true
	case Int:
		return strconv.FormatInt(v.i, 10), true
	case Uint:
		return strconv.FormatUint(v.u, 10), true
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, v.bits), true
	case Bool:
		return strconv.FormatBool(v.b), true
	case Other:
		switch o := v.other.(type) {
		case fmt.Stringer:
			return o.String(), true
		case error:
			return o.Error(), true
		default:
			return fmt.Sprint(o), true
		}
	default:
		return "", false
	}
}
