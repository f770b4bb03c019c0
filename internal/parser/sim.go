package parser

import (
	"regexp"
	"strconv"
	"strings"

	"hdlt/internal/domain"
)

// maxTraceLines bounds the context collected after an error line
const maxTraceLines = 8

var (
	// Failure markers anywhere on a line, across Icarus, Questa and xsim.
	// Upper-case ERROR, FATAL and FAILED are markers on their own; mixed case needs
	// the Error:/Fatal: form so summaries like "# Errors: 0" stay clean.
	errorLinePattern = regexp.MustCompile(`\*\*\s*(?:Error|Fatal)\b|\$fatal\b|(?i:\berror:|\bfatal:|\btest failed\b|\bassertion failed\b)|\bERROR\b|\bFATAL\b|\bFAILED\b`)

	// tb_fifo.sv:42: (Icarus)
	colonLocation = regexp.MustCompile(`([\w./\\-]+\.s?vh?):(\d+)`)
	// tb_fifo.sv(42) (Questa)
	parenLocation = regexp.MustCompile(`([\w./\\-]+\.s?vh?)\((\d+)\)`)
	// File: tb_fifo.sv Line: 42 (xsim)
	xsimLocation = regexp.MustCompile(`(?i)file:\s*([\w./\\-]+\.s?vh?)\s+line:\s*(\d+)`)
)

// SimParser evaluates simulator output
type SimParser struct{}

// NewSimParser creates a new SimParser
func NewSimParser() *SimParser {
	return &SimParser{}
}

// Evaluate reports whether a test passed: a clean exit and no error lines.
func (p *SimParser) Evaluate(result domain.TestResult) bool {
	if result.Error != nil {
		return false
	}
	for _, line := range strings.Split(result.Output, "\n") {
		if isErrorLine(line) {
			return false
		}
	}
	return true
}

// ParseTestCounts returns (1,0) for a passed test and (0,1) for a failed one
func (p *SimParser) ParseTestCounts(result domain.TestResult) (passed, failed int) {
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailure extracts one failure per error line of a failed test.
// A failed test without recognisable error lines yields a single failure holding the output tail.
func (p *SimParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	if result.Success {
		return nil
	}

	test := result.Test
	lines := strings.Split(result.Output, "\n")

	var failures []domain.TestFailure
	for i := 0; i < len(lines); i++ {
		if !isErrorLine(lines[i]) {
			continue
		}

		failure := domain.TestFailure{
			TestName:   test.Name(),
			FilePath:   test.Testbench.Path,
			Message:    cleanMessage(lines[i]),
			StackTrace: []string{},
		}
		failure.File, failure.Line = parseLocation(lines[i])

		// Collect the context lines that follow until the next error line
		j := i + 1
		for ; j < len(lines) && len(failure.StackTrace) < maxTraceLines; j++ {
			if isErrorLine(lines[j]) {
				break
			}
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" {
				continue
			}
			failure.StackTrace = append(failure.StackTrace, trimmed)
			if failure.File == "" {
				failure.File, failure.Line = parseLocation(lines[j])
			}
		}
		i = j - 1

		failures = append(failures, failure)
	}

	if len(failures) == 0 {
		failure := domain.TestFailure{
			TestName:     test.Name(),
			FilePath:     test.Testbench.Path,
			Message:      "simulation failed",
			ErrorDetails: tail(lines, 20),
			StackTrace:   []string{},
		}
		if result.Error != nil {
			failure.Message = result.Error.Error()
		}
		failures = append(failures, failure)
	}

	return failures
}

func isErrorLine(line string) bool {
	return errorLinePattern.MatchString(line)
}

func cleanMessage(line string) string {
	msg := strings.TrimSpace(line)
	msg = strings.TrimPrefix(msg, "#")
	return strings.TrimSpace(msg)
}

func parseLocation(line string) (string, int) {
	for _, re := range []*regexp.Regexp{xsimLocation, parenLocation, colonLocation} {
		if m := re.FindStringSubmatch(line); len(m) == 3 {
			n, err := strconv.Atoi(m[2])
			if err == nil {
				return m[1], n
			}
		}
	}
	return "", 0
}

func tail(lines []string, n int) string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
