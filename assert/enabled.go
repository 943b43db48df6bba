//go:build !assertions_disabled

// Package assert provides cheap internal invariant checks that panic on
// violation. The checks compile to no-ops under the assertions_disabled build
// tag, so they can guard hot paths without a release-mode cost.
package assert

import "fmt"

// True asserts that value is true and panics otherwise.
// The optional args form the panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	if value {
		return
	}

	if len(args) == 0 {
		panic("assertion failed")
	}

	first := args[0]
	remaining := args[1:]

	if firstStr, ok := first.(string); ok {
		panic(fmt.Sprintf(firstStr, remaining...))
	}

	panic(fmt.Sprintf("assertion failed: %v", args))
}

// False asserts that value is false and panics otherwise.
// The optional args are passed to True and follow the same formatting rules.
func False(value bool, args ...any) {
	True(!value, args...)
}

// NoError asserts that err is nil and panics otherwise, wrapping the error in
// the panic message. Use for errors that are impossible when internal
// invariants hold.
func NoError(err error, args ...any) {
	if err == nil {
		return
	}

	if len(args) == 0 {
		panic(fmt.Sprintf("assertion failed: %v", err))
	}

	True(false, args...)
}
