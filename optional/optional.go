// Package optional provides a type-safe Value type for results that may be
// absent, such as the first pair of an empty multimap. It models presence
// explicitly instead of overloading zero values or nil pointers.
package optional

import "iter"

// Value holds either one value of type T or nothing.
// Use Some to construct a present Value and None for an absent one.
// The zero Value is absent.
type Value[T any] struct {
	value T
	isSet bool
}

// Some creates a Value containing the given value.
func Some[T any](value T) Value[T] {
	return Value[T]{value: value, isSet: true}
}

// None creates an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it is present.
// This is the safe way to extract a value.
func (o Value[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOrElse returns the value if present, or defaultValue otherwise.
func (o Value[T]) GetOrElse(defaultValue T) T {
	if o.isSet {
		return o.value
	}

	return defaultValue
}

// GetOrPanic returns the value if present, or panics.
// Use only when presence is already established.
func (o Value[T]) GetOrPanic() T {
	if !o.isSet {
		panic("called GetOrPanic on None")
	}

	return o.value
}

// NonEmpty reports whether a value is present.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty reports whether no value is present.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// All returns an iterator yielding the value if present and nothing otherwise,
// allowing a Value to be ranged over like a zero-or-one element collection.
func (o Value[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o.isSet {
			yield(o.value)
		}
	}
}

// Map transforms the contained value with f, preserving absence.
func Map[T, U any](o Value[T], f func(T) U) Value[U] {
	if value, ok := o.Get(); ok {
		return Some(f(value))
	}

	return None[U]()
}
