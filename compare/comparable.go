// Package compare provides a minimal equality abstraction for value types that
// define their own notion of equivalence, such as case-insensitive header names
// or normalized identifiers.
package compare

// Comparable is implemented by types that can compare themselves for equality.
// The Equals method decides equivalence according to the type's own semantics,
// which may be looser than Go's == operator.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
