package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"hdlt/internal/domain"
)

var (
	// `TEST_CASE("name") as used by SystemVerilog unit test harnesses
	testCasePattern = regexp.MustCompile("`TEST_CASE\\s*\\(\\s*\"([^\"]+)\"\\s*\\)")
	// module <name> at the start of a statement, ignoring `endmodule`
	modulePattern = regexp.MustCompile(`(?m)^\s*module\s+(?:automatic\s+|static\s+)?([A-Za-z_][A-Za-z0-9_$]*)`)
	// line and block comments
	lineCommentPattern  = regexp.MustCompile(`//[^\n]*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Parser parses testbench files to extract modules and test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds all test cases declared in a testbench.
// A testbench without test cases yields a single "all" case.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := p.read(filePath)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var testCases []string
	for _, match := range testCasePattern.FindAllStringSubmatch(content, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			testCases = append(testCases, match[1])
		}
	}

	if len(testCases) == 0 {
		return []string{domain.AllCases}, nil
	}
	sort.Strings(testCases)
	return testCases, nil
}

// FindModules returns module names declared in a file, in declaration order
func (p *Parser) FindModules(filePath string) ([]string, error) {
	content, err := p.read(filePath)
	if err != nil {
		return nil, err
	}

	var modules []string
	for _, match := range modulePattern.FindAllStringSubmatch(content, -1) {
		modules = append(modules, match[1])
	}
	return modules, nil
}

func (p *Parser) read(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return stripComments(string(content)), nil
}

func stripComments(src string) string {
	src = blockCommentPattern.ReplaceAllString(src, "")
	return lineCommentPattern.ReplaceAllString(src, "")
}
