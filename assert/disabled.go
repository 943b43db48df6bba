//go:build assertions_disabled

// Package assert provides cheap internal invariant checks that panic on
// violation. The checks compile to no-ops under the assertions_disabled build
// tag, so they can guard hot paths without a release-mode cost.
package assert

// True asserts that value is true and panics otherwise.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	// Intentionally left blank
}

// False asserts that value is false and panics otherwise.
// The optional args are passed to True and follow the same formatting rules.
func False(value bool, args ...any) {
	// Intentionally left blank
}

// NoError asserts that err is nil and panics otherwise.
// The optional args are passed to True and follow the same formatting rules.
func NoError(err error, args ...any) {
	// Intentionally left blank
}
