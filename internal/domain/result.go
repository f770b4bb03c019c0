package domain

import "time"

// TestResult represents the result of simulating a single test
type TestResult struct {
	Test     Test
	Success  bool          // Whether the test passed
	Output   string        // Simulator output with ANSI codes stripped
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
	OutDir   string        // Per-test output directory
}

// BuildResult is the outcome of compiling a library or elaborating a testbench
type BuildResult struct {
	Target  string
	Success bool
	Output  string
	Error   error
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Simulator       string  `json:"simulator"`
	TotalTests      int     `json:"total_tests"`
	FailedTests     int     `json:"failed_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Failed  []string        `json:"failed"`
	Details []TestFailure   `json:"details"`
}
