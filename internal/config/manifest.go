package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest declares libraries and their sources in hdlt.yaml
type Manifest struct {
	Simulator string            `yaml:"simulator"`
	Libraries []LibraryManifest `yaml:"libraries"`
}

// LibraryManifest describes one logical library
type LibraryManifest struct {
	Name        string            `yaml:"name"`
	Sources     []string          `yaml:"sources"`
	IncludeDirs []string          `yaml:"include_dirs"`
	Defines     map[string]string `yaml:"defines"`
}

// LoadManifest reads the manifest at path. A missing file returns (nil, nil).
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	for i, lib := range m.Libraries {
		if lib.Name == "" {
			return nil, fmt.Errorf("manifest %s: library %d has no name", path, i)
		}
	}
	return &m, nil
}
