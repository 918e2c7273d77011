package registry

import (
	"reflect"
	"strings"

	"github.com/arthur-debert/typereg/pkg/errors"
)

// Subject identifies a kind of thing needing type-specific behavior.
// The zero Subject is the absence value: Find returns NotFound for it.
type Subject struct {
	// Namespace is the package or logical grouping the subject lives in
	Namespace string

	// Name is the subject's simple name within its namespace
	Name string
}

// IsZero reports whether the subject is the absence value
func (s Subject) IsZero() bool {
	return s == Subject{}
}

// Qualified returns the fully qualified "namespace.Name" form, or just
// the name when the subject has no namespace.
func (s Subject) Qualified() string {
	if s.Namespace == "" {
		return s.Name
	}
	return s.Namespace + "." + s.Name
}

// String implements fmt.Stringer
func (s Subject) String() string {
	return s.Qualified()
}

// SubjectOf derives a Subject from a Go type. Pointer types are
// dereferenced so SubjectOf[*Invoice]() and SubjectOf[Invoice]() name
// the same subject.
func SubjectOf[T any]() Subject {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return Subject{Namespace: t.PkgPath(), Name: t.Name()}
}

// ParseSubject parses the qualified "namespace.Name" form used in
// configuration files. The name is everything after the last dot; a
// bare name yields a subject without a namespace.
func ParseSubject(qualified string) (Subject, error) {
	if qualified == "" {
		return Subject{}, errors.New(errors.ErrInvalidInput, "subject cannot be empty")
	}

	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return Subject{Name: qualified}, nil
	}
	if idx == 0 || idx == len(qualified)-1 {
		return Subject{}, errors.Newf(errors.ErrInvalidInput, "malformed subject '%s'", qualified)
	}

	return Subject{Namespace: qualified[:idx], Name: qualified[idx+1:]}, nil
}
