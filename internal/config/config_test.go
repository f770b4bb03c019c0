package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSourceDir(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		expected string
	}{
		{name: "tests dir", root: "/repo/tests", expected: "/repo/src"},
		{name: "nested", root: "/a/b/c/tests", expected: "/a/b/c/src"},
		{name: "trailing slash", root: "/repo/tests/", expected: "/repo/src"},
		{name: "relocated", root: "/tmp/copy/verification", expected: "/tmp/copy/src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SourceDir(tt.root)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
			if sibling := filepath.Join(filepath.Dir(filepath.Clean(tt.root)), "src"); result != sibling {
				t.Errorf("src should be a sibling of the test root: %s != %s", result, sibling)
			}
		})
	}
}

func TestSourceDir_RelativeRoot(t *testing.T) {
	if got := SourceDir("."); got != filepath.Join("..", "src") {
		t.Errorf("expected ../src for a relative root, got %s", got)
	}

	root, err := ResolveTestRoot(".")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, sibling := SourceDir(root), filepath.Join(filepath.Dir(root), "src"); got != sibling {
		t.Errorf("expected %s for the resolved root, got %s", sibling, got)
	}
}

func TestResolveTestRoot(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	root, err := ResolveTestRoot("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != cwd {
		t.Errorf("expected %s, got %s", cwd, root)
	}

	root, err = ResolveTestRoot("/project/tests/../tests")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/project/tests" {
		t.Errorf("expected /project/tests, got %s", root)
	}
}

func TestConfig_GetSourceDir(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default sibling src",
			config:   &Config{TestRoot: "/project/tests"},
			expected: "/project/src",
		},
		{
			name:     "relative override",
			config:   &Config{TestRoot: "/project/tests", Flags: Flags{SrcDir: "rtl"}},
			expected: "/project/tests/rtl",
		},
		{
			name:     "absolute override",
			config:   &Config{TestRoot: "/project/tests", Flags: Flags{SrcDir: "/opt/rtl"}},
			expected: "/opt/rtl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSourceDir()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.TestRoot = "/project/tests"

	if got := cfg.GetOutputPath(); got != "/project/tests/hdlt_out/test-results.json" {
		t.Errorf("unexpected output path %s", got)
	}

	cfg.OutputPath = "/var/out"
	if got := cfg.GetOutputDir(); got != "/var/out" {
		t.Errorf("unexpected output dir %s", got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.LibraryName != DefaultLibraryName {
		t.Errorf("expected LibraryName %s, got %s", DefaultLibraryName, cfg.LibraryName)
	}
	if cfg.Pattern != "tb_*.sv" {
		t.Errorf("expected Pattern tb_*.sv, got %s", cfg.Pattern)
	}
	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	env := "HDLT_SIMULATOR=questa\nHDLT_PROCESSORS=8\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(env), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("HDLT_SIMULATOR", "")
	t.Setenv("HDLT_PROCESSORS", "")
	os.Unsetenv("HDLT_SIMULATOR")
	os.Unsetenv("HDLT_PROCESSORS")

	t.Run("environment overrides defaults", func(t *testing.T) {
		cfg, err := Load(Flags{TestPath: tmpDir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Simulator != "questa" {
			t.Errorf("expected simulator questa, got %s", cfg.Simulator)
		}
		if cfg.Processors != 8 {
			t.Errorf("expected 8 processors, got %d", cfg.Processors)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		cfg, err := Load(Flags{
			TestPath:  tmpDir,
			Simulator: "xsim",
			Timeout:   time.Second,
			Defines:   []string{"WIDTH=8", "SIM"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Simulator != "xsim" {
			t.Errorf("expected simulator xsim, got %s", cfg.Simulator)
		}
		if cfg.Timeout != time.Second {
			t.Errorf("expected timeout 1s, got %s", cfg.Timeout)
		}
		if cfg.Defines["WIDTH"] != "8" {
			t.Errorf("expected WIDTH=8, got %q", cfg.Defines["WIDTH"])
		}
		if _, ok := cfg.Defines["SIM"]; !ok {
			t.Error("expected SIM define")
		}
	})
}

func TestLoadManifest(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing manifest", func(t *testing.T) {
		m, err := LoadManifest(filepath.Join(tmpDir, "hdlt.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != nil {
			t.Error("expected nil manifest")
		}
	})

	t.Run("valid manifest", func(t *testing.T) {
		path := filepath.Join(tmpDir, "hdlt.yaml")
		content := `simulator: questa
libraries:
  - name: lib
    sources: ["tb_*.sv"]
    include_dirs: ["../src"]
    defines:
      WIDTH: "16"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}
		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m.Libraries) != 1 || m.Libraries[0].Name != "lib" {
			t.Fatalf("unexpected libraries: %+v", m.Libraries)
		}
		if m.Libraries[0].Defines["WIDTH"] != "16" {
			t.Errorf("expected WIDTH define, got %v", m.Libraries[0].Defines)
		}
	})

	t.Run("library without name", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("libraries:\n  - sources: [\"a.sv\"]\n"), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}
		if _, err := LoadManifest(path); err == nil {
			t.Error("expected error for unnamed library")
		}
	})
}
