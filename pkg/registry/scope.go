package registry

import (
	"github.com/arthur-debert/typereg/pkg/errors"
)

// Scope controls how resolved handlers are served
type Scope int

const (
	// ScopeSingleton shares one handler instance per subject (default)
	ScopeSingleton Scope = iota

	// ScopePrototype constructs a fresh handler instance on every Find
	ScopePrototype
)

// String implements fmt.Stringer
func (s Scope) String() string {
	switch s {
	case ScopeSingleton:
		return "singleton"
	case ScopePrototype:
		return "prototype"
	default:
		return "unknown"
	}
}

// ParseScope parses the textual scope form used in configuration files
func ParseScope(s string) (Scope, error) {
	switch s {
	case "singleton":
		return ScopeSingleton, nil
	case "prototype":
		return ScopePrototype, nil
	default:
		return ScopeSingleton, errors.Newf(errors.ErrInvalidInput, "unknown scope '%s'", s)
	}
}
