package config

import "time"

const (
	// DefaultTestRoot is the default directory holding the testbenches
	DefaultTestRoot = "."
	// DefaultLibraryName is the logical library testbenches are registered in
	DefaultLibraryName = "lib"
	// DefaultPattern is the glob testbench files must match
	DefaultPattern = "tb_*.sv"
	// DefaultSourceDirName is the sibling directory of the test root used as include path
	DefaultSourceDirName = "src"
	// DefaultSimulator is the default simulator driver
	DefaultSimulator = "icarus"
	// DefaultOutputPath is the default output directory, relative to the test root
	DefaultOutputPath = "hdlt_out"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultManifestFile is the optional manifest declaring libraries
	DefaultManifestFile = "hdlt.yaml"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultTimeout is the default per-test simulation timeout
	DefaultTimeout = 5 * time.Minute
)
