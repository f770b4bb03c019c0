package parser

import "hdlt/internal/domain"

// Parser parses test results and extracts failures
type Parser interface {
	Evaluate(result domain.TestResult) bool
	ParseFailure(result domain.TestResult) []domain.TestFailure
}
