// Package exitcodes defines the process exit codes of hdlt.
package exitcodes

import "errors"

const (
	Success     = 0 // All tests pass
	TestFailure = 1 // One or more tests failed
	RuntimeErr  = 2 // Configuration, build tool or I/O errors
)

// ErrTestsFailed is returned by commands when the run completed with failing tests
var ErrTestsFailed = errors.New("tests failed")

// FromError maps a command error to an exit code
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrTestsFailed):
		return TestFailure
	default:
		return RuntimeErr
	}
}
