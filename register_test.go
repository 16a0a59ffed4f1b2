package serialx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoice struct {
	InvoiceNumber string
	AmountDue     float32
}

func (i invoice) Overdue() bool { return i.AmountDue > 0 }

func TestRegister(t *testing.T) {
	require.NoError(t, Register[invoice](TypeConfig{Naming: PascalCase}, Method("Overdue", "")))

	out, err := Serialize(&invoice{InvoiceNumber: "F-1", AmountDue: 0.1})
	require.NoError(t, err)
	assert.Equal(t, `{"InvoiceNumber":"F-1","AmountDue":0.1,"Overdue":true}`, out)

	err = Register[invoice](DefaultTypeConfig())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Panics(t, func() { MustRegister[*invoice](DefaultTypeConfig()) })
}

func TestRegisterType(t *testing.T) {
	r := NewRegistry()

	err := RegisterType(r, reflect.TypeOf(0), DefaultTypeConfig())
	assert.ErrorIs(t, err, ErrNotStruct)

	err = RegisterType(r, nil, DefaultTypeConfig())
	assert.ErrorIs(t, err, ErrNullInput)

	type entry struct{ Key string }
	require.NoError(t, RegisterType(r, reflect.TypeOf(&entry{}), DefaultTypeConfig()))
	assert.ErrorIs(t, RegisterIn[entry](r, DefaultTypeConfig()), ErrAlreadyRegistered)
}

func TestRegistrationOverridesMarker(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterIn[person](r, TypeConfig{Naming: KebabCase}))
	s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

	out, err := s.Serialize(person{id: 2, name: "Rui", age: 40})
	require.NoError(t, err)
	assert.Equal(t, `{"id":2,"name":"Rui","age":40}`, out)
}

func TestParseConvention(t *testing.T) {
	for _, c := range []Convention{CamelCase, PascalCase, SnakeCase, KebabCase} {
		got, err := ParseConvention(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseConvention("title_case")
	assert.ErrorIs(t, err, ErrInvalidConvention)
}
