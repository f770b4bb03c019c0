package project

import (
	"fmt"
	"path/filepath"

	"hdlt/internal/config"
)

// Default builds the standard session: one library holding every testbench in the
// test root, compiled with the sibling src directory on the include path.
func Default(cfg *config.Config) (*Project, error) {
	p := New(cfg)

	lib, err := p.AddLibrary(cfg.LibraryName)
	if err != nil {
		return nil, err
	}

	includeDirs := append([]string{cfg.GetSourceDir()}, cfg.IncludeDirs...)
	_, err = lib.AddSourceFiles(
		filepath.Join(cfg.TestRoot, cfg.Pattern),
		WithIncludeDirs(includeDirs...),
		WithDefines(cfg.Defines),
	)
	if err != nil {
		return nil, fmt.Errorf("add sources to %s: %w", lib.Name, err)
	}

	return p, nil
}

// FromManifest builds a session from the libraries declared in a manifest.
// Relative sources and include directories are resolved against the test root.
func FromManifest(cfg *config.Config, m *config.Manifest) (*Project, error) {
	p := New(cfg)

	for _, lm := range m.Libraries {
		lib, err := p.AddLibrary(lm.Name)
		if err != nil {
			return nil, err
		}

		includeDirs := make([]string, 0, len(lm.IncludeDirs)+len(cfg.IncludeDirs))
		for _, dir := range append(lm.IncludeDirs, cfg.IncludeDirs...) {
			includeDirs = append(includeDirs, resolve(cfg.TestRoot, dir))
		}

		defines := make(map[string]string, len(lm.Defines)+len(cfg.Defines))
		for k, v := range lm.Defines {
			defines[k] = v
		}
		for k, v := range cfg.Defines {
			defines[k] = v
		}

		for _, src := range lm.Sources {
			if _, err := lib.AddSourceFiles(resolve(cfg.TestRoot, src), WithIncludeDirs(includeDirs...), WithDefines(defines)); err != nil {
				return nil, fmt.Errorf("add sources to %s: %w", lib.Name, err)
			}
		}
	}

	return p, nil
}

// Load returns the manifest-driven project when hdlt.yaml exists, the default one otherwise
func Load(cfg *config.Config) (*Project, error) {
	m, err := config.LoadManifest(cfg.GetManifestPath())
	if err != nil {
		return nil, err
	}
	if m == nil {
		return Default(cfg)
	}
	if m.Simulator != "" && !cfg.SimulatorOverridden() {
		cfg.Simulator = m.Simulator
	}
	return FromManifest(cfg, m)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
