package processor

import (
	"github.com/hengadev/serialx/internal/value"
)

// Source tells how a member value was obtained.
type Source uint8

const (
	SourceField Source = iota
	SourceMethod
)

func (s Source) String() string {
	switch s {
	case SourceField:
		return "field"
	case SourceMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Member is one entry collected from an instance.
type Member struct {
	DeclaredName string
	OverrideName string
	Value        value.Value
	Source       Source
}

// EffectiveName is the override when one was supplied, the declared name otherwise.
func (m Member) EffectiveName() string {
	if m.OverrideName != "" {
		return m.OverrideName
	}
	return m.DeclaredName
}
