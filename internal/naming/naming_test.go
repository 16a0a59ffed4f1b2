package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/serialx/internal/serialxerr"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name       string
		convention Convention
		input      string
		expected   string
	}{
		{"camel is identity", CamelCase, "firstName", "firstName"},
		{"pascal", PascalCase, "firstName", "FirstName"},
		{"snake", SnakeCase, "firstName", "first_name"},
		{"kebab", KebabCase, "firstName", "first-name"},
		{"snake single word", SnakeCase, "id", "id"},
		{"snake splits acronym", SnakeCase, "userID", "user_i_d"},
		{"kebab splits acronym", KebabCase, "userID", "user-i-d"},
		{"snake splits inner acronym", SnakeCase, "parseHTTPRequest", "parse_h_t_t_p_request"},
		{"kebab splits inner acronym", KebabCase, "parseHTTPRequest", "parse-h-t-t-p-request"},
		{"snake canonical leading acronym", SnakeCase, Canonical("URLPath"), "url_path"},
		{"snake canonical trailing acronym", SnakeCase, Canonical("OrderID"), "order_i_d"},
		{"snake multiple words", SnakeCase, "firstPersonName", "first_person_name"},
		{"snake digits stay attached", SnakeCase, "address2Line", "address2_line"},
		{"pascal keeps boundaries", PascalCase, "fullName", "FullName"},
		{"pascal unicode", PascalCase, "ção", "Ção"},
		{"empty", SnakeCase, "", ""},
		{"pascal empty", PascalCase, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Transform(tt.convention, tt.input))
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"name", "name"},
		{"FullName", "fullName"},
		{"ID", "id"},
		{"URLPath", "urlPath"},
		{"FirstPersonName", "firstPersonName"},
		{"ID2", "id2"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonical(tt.input))
		})
	}
}

func TestParseConvention(t *testing.T) {
	tests := []struct {
		input    string
		expected Convention
	}{
		{"camel_case", CamelCase},
		{"CAMEL_CASE", CamelCase},
		{"pascal", PascalCase},
		{"Snake_Case", SnakeCase},
		{"kebab-case", KebabCase},
		{" kebab_case ", KebabCase},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseConvention(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}

	t.Run("unknown convention", func(t *testing.T) {
		_, err := ParseConvention("screaming")
		assert.ErrorIs(t, err, serialxerr.ErrInvalidConvention)
	})
}

func TestConvention_String(t *testing.T) {
	for _, c := range Conventions() {
		parsed, err := ParseConvention(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	assert.Equal(t, "unknown", Convention(42).String())
}
