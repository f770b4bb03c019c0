package parser

import (
	"errors"
	"testing"

	"hdlt/internal/domain"
)

func fifoTest() domain.Test {
	return domain.Test{
		Testbench: domain.Testbench{Library: "lib", Path: "/repo/tests/tb_fifo.sv", Top: "tb_fifo"},
		Case:      "overflow",
	}
}

func TestSimParser_Evaluate(t *testing.T) {
	parser := NewSimParser()

	tests := []struct {
		name     string
		output   string
		err      error
		expected bool
	}{
		{name: "clean run", output: "VCD info: dumpfile\nTEST PASSED\n", expected: true},
		{name: "questa summary", output: "# ** Note: $finish    : tb_fifo.sv(40)\n# Errors: 0, Warnings: 0\n", expected: true},
		{name: "non-zero exit", output: "", err: errors.New("exit status 1"), expected: false},
		{name: "icarus error", output: "ERROR: tb_fifo.sv:42: data mismatch\n", expected: false},
		{name: "icarus fatal", output: "FATAL: tb_fifo.sv:12: overflow\n", expected: false},
		{name: "questa error", output: "# ** Error: Assertion error.\n#    Time: 40 ns  Scope: tb_fifo File: tb_fifo.sv Line: 42\n", expected: false},
		{name: "xsim error", output: "Error: mismatch\nTime: 40 ns  Iteration: 0  Process: /tb_fifo/check  File: /repo/tests/tb_fifo.sv Line: 42\n", expected: false},
		{name: "explicit failure", output: "TEST FAILED: expected 3 got 4\n", expected: false},
		{name: "prefixed test failed", output: "tb_fifo: TEST FAILED\n$finish called\n", expected: false},
		{name: "timestamped error", output: "[100] ERROR mismatch expected 3 got 4\n$finish called\n", expected: false},
		{name: "trailing failed", output: "check_overflow ... FAILED\n$finish called\n", expected: false},
		{name: "located assertion", output: "tb_fifo.sv:42: ASSERTION FAILED\n$finish called\n", expected: false},
		{name: "error beside pass text", output: "ERROR: counter mismatch, all tests passed flag set wrongly\n$finish called\n", expected: false},
		{name: "lower-case test failed", output: "tb_fifo: test failed at 40ns\n", expected: false},
		{name: "questa fatal", output: "# ** Fatal: (vsim-3421) Value out of range\n", expected: false},
		{name: "error counters", output: "error_count = 0\nFailed: 0 Passed: 4\nTEST PASSED\n", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := domain.TestResult{Test: fifoTest(), Output: tt.output, Error: tt.err}
			if got := parser.Evaluate(result); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSimParser_ParseFailure(t *testing.T) {
	parser := NewSimParser()

	t.Run("passed test has no failures", func(t *testing.T) {
		result := domain.TestResult{Test: fifoTest(), Success: true}
		if failures := parser.ParseFailure(result); len(failures) != 0 {
			t.Errorf("expected no failures, got %d", len(failures))
		}
	})

	t.Run("icarus errors", func(t *testing.T) {
		output := `VCD info: dumpfile tb_fifo.vcd opened for output.
ERROR: /repo/tests/tb_fifo.sv:42: data mismatch
       Time: 40  Scope: tb_fifo.check
ERROR: /repo/tests/tb_fifo.sv:57: count mismatch
/repo/tests/tb_fifo.sv:60: $finish called at 90 (1s)
`
		failures := parser.ParseFailure(domain.TestResult{Test: fifoTest(), Output: output})
		if len(failures) != 2 {
			t.Fatalf("expected 2 failures, got %d: %+v", len(failures), failures)
		}

		first := failures[0]
		if first.TestName != "lib.tb_fifo.overflow" {
			t.Errorf("unexpected test name %s", first.TestName)
		}
		if first.File != "/repo/tests/tb_fifo.sv" || first.Line != 42 {
			t.Errorf("unexpected location %s:%d", first.File, first.Line)
		}
		if first.Message != "ERROR: /repo/tests/tb_fifo.sv:42: data mismatch" {
			t.Errorf("unexpected message %q", first.Message)
		}
		if len(first.StackTrace) != 1 {
			t.Errorf("expected 1 trace line, got %v", first.StackTrace)
		}
		if failures[1].Line != 57 {
			t.Errorf("expected line 57, got %d", failures[1].Line)
		}
	})

	t.Run("questa location on following line", func(t *testing.T) {
		output := "# ** Error: Assertion error.\n#    Time: 40 ns  Scope: tb_fifo.check File: tb_fifo.sv Line: 42\n"
		failures := parser.ParseFailure(domain.TestResult{Test: fifoTest(), Output: output})
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		if failures[0].File != "tb_fifo.sv" || failures[0].Line != 42 {
			t.Errorf("unexpected location %s:%d", failures[0].File, failures[0].Line)
		}
		if failures[0].Message != "** Error: Assertion error." {
			t.Errorf("unexpected message %q", failures[0].Message)
		}
	})

	t.Run("questa parenthesised location", func(t *testing.T) {
		output := "# ** Fatal: overflow\n#    Time: 90 ns  Iteration: 0  Process: /tb_fifo/main File: /repo/tests/tb_fifo.sv(77)\n"
		failures := parser.ParseFailure(domain.TestResult{Test: fifoTest(), Output: output})
		if len(failures) != 1 || failures[0].Line != 77 {
			t.Fatalf("unexpected failures %+v", failures)
		}
	})

	t.Run("crash without error lines", func(t *testing.T) {
		result := domain.TestResult{Test: fifoTest(), Output: "segmentation fault\n", Error: errors.New("exit status 139")}
		failures := parser.ParseFailure(result)
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		if failures[0].Message != "exit status 139" {
			t.Errorf("unexpected message %q", failures[0].Message)
		}
		if failures[0].ErrorDetails != "segmentation fault" {
			t.Errorf("unexpected details %q", failures[0].ErrorDetails)
		}
	})
}

func TestSimParser_ParseTestCounts(t *testing.T) {
	parser := NewSimParser()
	if p, f := parser.ParseTestCounts(domain.TestResult{Success: true}); p != 1 || f != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", p, f)
	}
	if p, f := parser.ParseTestCounts(domain.TestResult{}); p != 0 || f != 1 {
		t.Errorf("expected (0,1), got (%d,%d)", p, f)
	}
}
