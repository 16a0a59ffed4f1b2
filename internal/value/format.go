package value

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hengadev/serialx/internal/serialxerr"
)

// FormatOptions tune how literals are produced.
type FormatOptions struct {
	// RawStrings wraps string values in quotes without escaping embedded
	// quotes, backslashes or control characters.
	RawStrings bool
}

// Format renders v as a document literal. String values are quoted, every
// other kind is emitted unquoted. A Null value is an error.
func Format(v Value, opts FormatOptions) (string, error) {
	literal, ok := v.Literal()
	if !ok {
		return "", serialxerr.ErrNullValue
	}
	if v.kind != String {
		return literal, nil
	}
	if opts.RawStrings {
		return `"` + literal + `"`, nil
	}
	return quote(literal)
}

// quote produces a JSON string literal, leaving non-ASCII text and HTML
// characters untouched.
func quote(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
