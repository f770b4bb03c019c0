package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scanner finds testbench files directly inside a directory
type Scanner struct{}

// NewScanner creates a new Scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns all regular files in root whose base name matches pattern, sorted.
// Subdirectories are not descended into.
func (s *Scanner) Scan(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read test path %s: %w", root, err)
	}

	var testbenches []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			testbenches = append(testbenches, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(testbenches)

	return testbenches, nil
}

// Glob resolves a glob that may contain a directory part, e.g. "tests/tb_*.sv".
// Only regular files are returned, sorted. No match is not an error.
func (s *Scanner) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)

	return files, nil
}
