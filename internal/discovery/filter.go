package discovery

import (
	"path/filepath"
	"strings"

	"hdlt/internal/domain"
)

// Filter filters tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps tests whose dotted name (lib.tb.case) matches any of the patterns.
// No patterns keeps everything.
func (f *Filter) FilterByName(tests []domain.Test, patterns ...string) []domain.Test {
	var active []string
	for _, p := range patterns {
		if p != "" {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return tests
	}

	var filtered []domain.Test
	for _, test := range tests {
		for _, pattern := range active {
			if MatchName(test.Name(), pattern) {
				filtered = append(filtered, test)
				break
			}
		}
	}
	return filtered
}

// MatchName reports whether name matches pattern.
// Supports patterns like "lib.tb_fifo.*", "*overflow*" or a plain substring.
func MatchName(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible ordered substring match for patterns like "*fifo*"
	if strings.Contains(pattern, "*") {
		rest := name
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
