// Package naming maps declared identifiers to the key casing selected by a
// type's serialization configuration.
package naming

import (
	"strings"
	"unicode"

	"github.com/hengadev/serialx/internal/serialxerr"
)

// Convention selects how a canonical lowerCamel identifier is rendered as a key.
type Convention int8

const (
	CamelCase Convention = iota
	PascalCase
	SnakeCase
	KebabCase
)

var conventionNames = map[Convention]string{
	CamelCase:  "camel_case",
	PascalCase: "pascal_case",
	SnakeCase:  "snake_case",
	KebabCase:  "kebab_case",
}

func (c Convention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Conventions returns every supported convention in declaration order.
func Conventions() []Convention {
	return []Convention{CamelCase, PascalCase, SnakeCase, KebabCase}
}

// ParseConvention accepts "snake_case", "SNAKE_CASE", "snake-case" or "snake"
// and their equivalents for the other conventions.
func ParseConvention(s string) (Convention, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.TrimSuffix(normalized, "_case")
	switch normalized {
	case "camel":
		return CamelCase, nil
	case "pascal":
		return PascalCase, nil
	case "snake":
		return SnakeCase, nil
	case "kebab":
		return KebabCase, nil
	default:
		return CamelCase, serialxerr.NewInvalidConventionError(s)
	}
}

// Transform renders name, assumed to be lowerCamel, in convention c.
func Transform(c Convention, name string) string {
	switch c {
	case PascalCase:
		return upperFirst(name)
	case SnakeCase:
		return joinLower(tokenize(name), "_")
	case KebabCase:
		return joinLower(tokenize(name), "-")
	default:
		return name
	}
}

// Canonical puts a Go identifier into lowerCamel form by lowering its leading
// upper-case run: "FullName" -> "fullName", "ID" -> "id", "URLPath" -> "urlPath".
// Only the leading run is lowered, so "OrderID" -> "orderID", which snake case
// renders as "order_i_d".
func Canonical(name string) string {
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
		return name
	case upper > 1 && upper < len(runes) && unicode.IsLower(runes[upper]):
		// keep the last upper rune, it starts the next word
		upper--
	}
	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func upperFirst(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func joinLower(tokens []string, sep string) string {
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return strings.Join(tokens, sep)
}

// tokenize splits a lowerCamel identifier before every upper-case rune past
// the first position. Acronyms are not grouped.
//   - "firstName" -> ["first", "Name"]
//   - "userID" -> ["user", "I", "D"]
//   - "parseHTTPRequest" -> ["parse", "H", "T", "T", "P", "Request"]
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func startsToken(runes []rune, i int) bool {
	return i > 0 && unicode.IsUpper(runes[i])
}
