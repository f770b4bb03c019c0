package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"hdlt/internal/domain"
)

func init() {
	color.NoColor = true
}

func sampleTests() []domain.Test {
	fifo := domain.Testbench{Library: "lib", Top: "tb_fifo", Path: "/t/tb_fifo.sv"}
	uart := domain.Testbench{Library: "lib", Top: "tb_uart", Path: "/t/tb_uart.sv"}
	return []domain.Test{
		{Testbench: fifo, Case: "pop"},
		{Testbench: fifo, Case: "push"},
		{Testbench: uart, Case: "all"},
	}
}

func TestFormatter_PrintTestList(t *testing.T) {
	failed := map[string]struct{}{"lib.tb_fifo.push": {}}

	t.Run("testbenches", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterTo(&buf).PrintTestList(sampleTests(), false, failed)
		out := buf.String()

		assert.Contains(t, out, "Found 2 testbench(es)")
		assert.Contains(t, out, "├── lib.tb_fifo  /t/tb_fifo.sv [F]")
		assert.Contains(t, out, "└── lib.tb_uart  /t/tb_uart.sv\n")
	})

	t.Run("test cases", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterTo(&buf).PrintTestList(sampleTests(), true, failed)
		out := buf.String()

		assert.Contains(t, out, "Found 3 test(s) in 2 testbench(es)")
		assert.Contains(t, out, "│   ├── pop\n")
		assert.Contains(t, out, "│   └── push [F]")
		assert.Contains(t, out, "    └── all")
	})
}

func TestFormatter_PrintMetaStats(t *testing.T) {
	t.Run("all passed", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterTo(&buf).PrintMetaStats(&domain.TestResultsOutput{
			Meta: domain.TestResultsMeta{RunID: "r1", Simulator: "icarus", TotalTests: 3, PassedTests: 3},
		})
		out := buf.String()
		assert.Contains(t, out, "Simulator")
		assert.Contains(t, out, "icarus")
		assert.Contains(t, out, "All tests passed")
	})

	t.Run("failure tree", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterTo(&buf).PrintMetaStats(&domain.TestResultsOutput{
			Meta:   domain.TestResultsMeta{TotalTests: 3, PassedTests: 1, FailedTests: 2, FailedTestCases: 2},
			Failed: []string{"lib.tb_fifo.pop", "lib.tb_uart.all"},
		})
		out := buf.String()
		assert.Contains(t, out, "2 test(s) failed")
		assert.Contains(t, out, "└── lib\n")
		assert.Contains(t, out, "    ├── tb_fifo\n")
		assert.Contains(t, out, "    │   └── pop\n")
		assert.Contains(t, out, "    └── tb_uart\n")
	})
}

func TestFormatter_PrintBuildFailures(t *testing.T) {
	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintBuildFailures([]domain.BuildResult{
		{Target: "lib.tb_fifo", Output: "tb_fifo.sv:3: syntax error\n"},
	})
	out := buf.String()
	assert.Contains(t, out, "build failed: lib.tb_fifo")
	assert.Contains(t, out, "  tb_fifo.sv:3: syntax error")
}

func TestFormatFailureDetails(t *testing.T) {
	failure := domain.TestFailure{
		TestName:   "lib.tb_fifo.pop",
		FilePath:   "/t/tb_fifo.sv",
		File:       "/t/tb_fifo.sv",
		Line:       42,
		Message:    "ERROR: mismatch [expected 1]",
		StackTrace: make([]string, 12),
	}
	details := FormatFailureDetails(failure)
	assert.Contains(t, details, "Location: /t/tb_fifo.sv:42")
	// tview tags inside messages are escaped
	assert.Contains(t, details, "mismatch [expected 1[]")
	assert.Contains(t, details, "and 2 more lines")

	stats := FormatFailureStats(domain.TestFailure{}, 3)
	assert.True(t, strings.Contains(stats, "Unknown path") && strings.Contains(stats, "Test 3"))
}
