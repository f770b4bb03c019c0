package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdlt/internal/exitcodes"
)

func TestRun_List(t *testing.T) {
	base := t.TempDir()
	tests := filepath.Join(base, "tests")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "src"), 0755))
	require.NoError(t, os.MkdirAll(tests, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tests, "tb_counter.sv"),
		[]byte("module tb_counter;\n`TEST_CASE(\"wraps\") begin end\nendmodule\n"), 0644))

	assert.Equal(t, exitcodes.Success, run([]string{"list", "-t", tests, "-c"}))
}

func TestRun_NoTestbenches(t *testing.T) {
	assert.Equal(t, exitcodes.Success, run([]string{"run", "-t", t.TempDir()}))
}

func TestRun_UnknownSimulator(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tb_a.sv"), []byte("module tb_a;\nendmodule\n"), 0644))

	assert.Equal(t, exitcodes.RuntimeErr, run([]string{"run", "-t", dir, "-s", "nosuchsim"}))
}

func TestRun_MissingTestPath(t *testing.T) {
	assert.Equal(t, exitcodes.RuntimeErr, run([]string{"failures", "-t", filepath.Join(t.TempDir(), "missing")}))
}
