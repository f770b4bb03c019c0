package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveTestRoot returns the absolute, cleaned test root directory.
// An empty path resolves to the current working directory.
func ResolveTestRoot(path string) (string, error) {
	if path == "" {
		path = DefaultTestRoot
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve test root %s: %w", path, err)
	}
	return abs, nil
}

// SourceDir returns <testRoot>/../src. testRoot is expected to come from ResolveTestRoot;
// a relative root is joined lexically, so "." gives "../src".
func SourceDir(testRoot string) string {
	return filepath.Join(testRoot, "..", DefaultSourceDirName)
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
