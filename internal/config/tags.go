package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/serialx/internal/naming"
	"github.com/hengadev/serialx/internal/serialxerr"
)

const (
	// StructTag is the tag key read on the marker field.
	StructTag = "serialx"
	// MarkerField is the name of the blank field carrying the type tag.
	MarkerField = "_"

	OptionNaming   = "naming"
	OptionPrettify = "prettify"
	OptionMethod   = "method"
)

// Option is a single key=value (or bare flag) entry of a serialx tag or directive.
type Option struct {
	Key   string
	Value string
}

// ParseOptions splits "naming=snake_case,prettify=false method=Name:Custom"
// into ordered options. Commas and spaces both separate entries; values may be
// quoted with single or double quotes.
func ParseOptions(tag string) ([]Option, error) {
	var parts []string
	var current strings.Builder
	var quote byte

	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			current.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == ',' || c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, serialxerr.NewInvalidTagError(tag, "unterminated quote")
	}
	flush()

	options := make([]Option, 0, len(parts))
	for _, part := range parts {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, serialxerr.NewInvalidTagError(tag, fmt.Sprintf("empty key in %q", part))
		}
		if hasValue {
			value = unquote(strings.TrimSpace(value))
		}
		options = append(options, Option{Key: key, Value: value})
	}
	return options, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// Decode builds a configuration and its method specs from parsed options.
// Every invalid option is reported, not just the first one.
func Decode(options []Option) (TypeConfig, []MethodSpec, error) {
	cfg := DefaultTypeConfig()
	var methods []MethodSpec
	errs := make(errsx.Map)

	for i, opt := range options {
		key := fmt.Sprintf("%s#%d", opt.Key, i)
		switch opt.Key {
		case OptionNaming:
			convention, err := naming.ParseConvention(opt.Value)
			if err != nil {
				errs.Set(key, err)
				continue
			}
			cfg.Naming = convention
		case OptionPrettify:
			if opt.Value == "" {
				cfg.Prettify = true
				continue
			}
			prettify, err := strconv.ParseBool(opt.Value)
			if err != nil {
				errs.Set(key, fmt.Errorf("prettify must be a boolean, got '%s'", opt.Value))
				continue
			}
			cfg.Prettify = prettify
		case OptionMethod:
			spec, err := ParseMethodSpec(opt.Value)
			if err != nil {
				errs.Set(key, err)
				continue
			}
			methods = append(methods, spec)
		default:
			errs.Set(key, fmt.Errorf("unknown option '%s', supported options: %s, %s, %s",
				opt.Key, OptionNaming, OptionPrettify, OptionMethod))
		}
	}

	if err := errs.AsError(); err != nil {
		return TypeConfig{}, nil, err
	}
	return cfg, methods, nil
}

// ParseMethodSpec reads "Name" or "Name:CustomName".
func ParseMethodSpec(s string) (MethodSpec, error) {
	name, custom, _ := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return MethodSpec{}, fmt.Errorf("method option requires a method name, got '%s'", s)
	}
	return MethodSpec{Name: name, CustomName: strings.TrimSpace(custom)}, nil
}

// MarkerTag returns the serialx tag carried by the blank marker field of t.
func MarkerTag(t reflect.Type) (string, bool) {
	if t.Kind() != reflect.Struct {
		return "", false
	}
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name != MarkerField {
			continue
		}
		if tag, ok := field.Tag.Lookup(StructTag); ok {
			return tag, true
		}
	}
	return "", false
}

// DecodeTag parses and decodes a marker tag, wrapping failures in ErrInvalidTag.
func DecodeTag(tag string) (TypeConfig, []MethodSpec, error) {
	options, err := ParseOptions(tag)
	if err != nil {
		return TypeConfig{}, nil, err
	}
	cfg, methods, err := Decode(options)
	if err != nil {
		return TypeConfig{}, nil, serialxerr.NewInvalidTagError(tag, err.Error())
	}
	return cfg, methods, nil
}
