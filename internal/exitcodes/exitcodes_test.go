package exitcodes

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: Success},
		{name: "tests failed", err: ErrTestsFailed, expected: TestFailure},
		{name: "wrapped tests failed", err: fmt.Errorf("3 of 5: %w", ErrTestsFailed), expected: TestFailure},
		{name: "runtime", err: errors.New("iverilog not found"), expected: RuntimeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromError(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
