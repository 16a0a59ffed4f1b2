package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/serialx/internal/serialxerr"
)

type status int

func (s status) String() string {
	if s == 1 {
		return "ACTIVE"
	}
	return "INACTIVE"
}

type label string

func (l label) String() string { return "label:" + string(l) }

type point struct{ X, Y int }

func TestOf(t *testing.T) {
	var nilPtr *int
	var nilSlice []int
	var nilMap map[string]int
	var nilIface any
	n := 7

	tests := []struct {
		name  string
		input any
		kind  Kind
	}{
		{"string", "João", String},
		{"int", 26, Int},
		{"int8", int8(-3), Int},
		{"int64", int64(1), Int},
		{"uint", uint16(9), Uint},
		{"float32", float32(1.5), Float},
		{"float64", 3200.32, Float},
		{"bool", true, Bool},
		{"struct", point{1, 2}, Other},
		{"stringer int kind", status(1), Other},
		{"string kind with stringer", label("x"), String},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Other},
		{"uuid", uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), Other},
		{"non nil pointer is followed", &n, Int},
		{"nil pointer", nilPtr, Null},
		{"nil slice", nilSlice, Null},
		{"nil map", nilMap, Null},
		{"non nil slice", []int{1, 2}, Other},
		{"error value", errors.New("boom"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Of(reflect.ValueOf(tt.input)).Kind())
		})
	}

	t.Run("invalid reflect value", func(t *testing.T) {
		assert.True(t, Of(reflect.ValueOf(nilIface)).IsNull())
	})

	t.Run("interface holding nil pointer", func(t *testing.T) {
		holder := struct{ S fmt.Stringer }{S: (*status)(nil)}
		v := Of(reflect.ValueOf(holder).Field(0))
		assert.True(t, v.IsNull())

		_, err := Format(v, FormatOptions{})
		assert.ErrorIs(t, err, serialxerr.ErrNullValue)
	})

	t.Run("interface holding stringer", func(t *testing.T) {
		active := status(1)
		holder := struct{ S fmt.Stringer }{S: &active}
		v := Of(reflect.ValueOf(holder).Field(0))
		require.Equal(t, Other, v.Kind())
		literal, ok := v.Literal()
		assert.True(t, ok)
		assert.Equal(t, "ACTIVE", literal)
	})

	t.Run("interface holding string", func(t *testing.T) {
		holder := struct{ V any }{V: "inner"}
		v := Of(reflect.ValueOf(holder).Field(0))
		assert.Equal(t, String, v.Kind())
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		opts     FormatOptions
		expected string
	}{
		{"string is quoted", StringOf("João da Silva"), FormatOptions{}, `"João da Silva"`},
		{"int", IntOf(26), FormatOptions{}, "26"},
		{"negative int", IntOf(-1), FormatOptions{}, "-1"},
		{"uint", UintOf(math.MaxUint64), FormatOptions{}, "18446744073709551615"},
		{"float shortest", FloatOf(3200.32, 64), FormatOptions{}, "3200.32"},
		{"float32 shortest", FloatOf(float64(float32(0.1)), 32), FormatOptions{}, "0.1"},
		{"whole float", FloatOf(26, 64), FormatOptions{}, "26"},
		{"bool", BoolOf(false), FormatOptions{}, "false"},
		{"stringer", OtherOf(status(1)), FormatOptions{}, "ACTIVE"},
		{"plain struct", OtherOf(point{1, 2}), FormatOptions{}, "{1 2}"},
		{"error", OtherOf(errors.New("boom")), FormatOptions{}, "boom"},
		{"escaped quote", StringOf(`say "hi"`), FormatOptions{}, `"say \"hi\""`},
		{"escaped newline", StringOf("a\nb"), FormatOptions{}, `"a\nb"`},
		{"html kept", StringOf("<a&b>"), FormatOptions{}, `"<a&b>"`},
		{"raw quote", StringOf(`say "hi"`), FormatOptions{RawStrings: true}, `"say "hi""`},
		{"raw newline", StringOf("a\nb"), FormatOptions{RawStrings: true}, "\"a\nb\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.value, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("null fails", func(t *testing.T) {
		_, err := Format(NullOf(), FormatOptions{})
		assert.ErrorIs(t, err, serialxerr.ErrNullValue)
	})

	t.Run("nil other is null", func(t *testing.T) {
		assert.True(t, OtherOf(nil).IsNull())
	})
}
