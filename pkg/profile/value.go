// Package profile models the applicant profile tree and dotted-path resolution
package profile

import "strings"

// ValueKind discriminates the two leaf shapes a profile tree may hold.
type ValueKind int

const (
	// KindNone is the zero Value, returned when a path does not resolve.
	KindNone ValueKind = iota
	// KindScalar is a single string leaf.
	KindScalar
	// KindList is an array-of-strings leaf.
	KindList
)

// Value is one resolved profile leaf. Profile leaves are either a string or
// an array of strings; modeling that as an explicit variant keeps emptiness
// checks and display rendering exhaustive instead of ad hoc type probing.
type Value struct {
	kind   ValueKind
	scalar string
	list   []string
}

// NewScalar wraps a single string leaf.
func NewScalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// NewList wraps an array-of-strings leaf.
func NewList(items []string) Value {
	return Value{kind: KindList, list: items}
}

// Kind returns the variant discriminator.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty reports whether the value has nothing to offer a form field.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindScalar:
		return v.scalar == ""
	case KindList:
		return len(v.list) == 0
	default:
		return true
	}
}

// Display renders the value for insertion into a form field. Lists are
// comma-joined; the execution collaborator decides how multi-value widgets
// actually consume them.
func (v Value) Display() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}
