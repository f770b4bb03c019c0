package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	// Create a temporary directory structure for testing
	tmpDir, err := os.MkdirTemp("", "hdlt-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Join(tmpDir, "tb_dir.sv"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "nested"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	testFiles := []string{
		"tb_fifo.sv",
		"tb_uart.sv",
		"tb_.sv",
		"tb_fifo.svh",
		"fifo_tb.sv",
		"xtb_fifo.sv",
		"tb_fifo.sv.bak",
		"TB_upper.sv",
		"nested/tb_deep.sv",
	}
	for _, file := range testFiles {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("module m; endmodule"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner()

	t.Run("matches all and only tb_*.sv files", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir, "tb_*.sv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			filepath.Join(tmpDir, "tb_.sv"),
			filepath.Join(tmpDir, "tb_fifo.sv"),
			filepath.Join(tmpDir, "tb_uart.sv"),
		}
		if len(results) != len(expected) {
			t.Fatalf("expected %d testbenches, got %d: %v", len(expected), len(results), results)
		}
		for i := range expected {
			if results[i] != expected[i] {
				t.Errorf("expected %s at %d, got %s", expected[i], i, results[i])
			}
		}
	})

	t.Run("no matches is not an error", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir, "tb_*.vhd")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %v", results)
		}
	})

	t.Run("returns error for malformed pattern", func(t *testing.T) {
		if _, err := scanner.Scan(tmpDir, "tb_[.sv"); err == nil {
			t.Error("expected error for malformed pattern")
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path", "tb_*.sv")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "tb_fifo.sv"), "tb_*.sv")
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_Glob(t *testing.T) {
	tmpDir := t.TempDir()
	for _, file := range []string{"tb_a.sv", "tb_b.sv", "pkg.sv"} {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte(""), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner()

	results, err := scanner.Glob(filepath.Join(tmpDir, "tb_*.sv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 matches, got %v", results)
	}

	results, err = scanner.Glob(filepath.Join(tmpDir, "missing", "tb_*.sv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %v", results)
	}

	if _, err := scanner.Glob(filepath.Join(tmpDir, "[")); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
