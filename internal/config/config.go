package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvSimulator selects the simulator when no --simulator flag is given
const EnvSimulator = "HDLT_SIMULATOR"

// Config holds all configuration for the application
type Config struct {
	// Test settings
	TestRoot    string
	LibraryName string
	Pattern     string

	// Compilation settings
	IncludeDirs []string
	Defines     map[string]string

	// Simulation settings
	Simulator  string
	OutputPath string
	Processors int
	Timeout    time.Duration

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors    int
	Simulator     string
	OutputPath    string
	TestPath      string
	SrcDir        string
	NameFilter    string
	Patterns      []string
	Defines       []string
	IncludeDirs   []string
	Timeout       time.Duration
	TestCases     bool
	FailFast      bool
	OnlyFailed    bool
	RerunFailures bool
	OpenFailures  bool
	Record        bool
	Clean         bool
	Verbose       bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		TestRoot:    DefaultTestRoot,
		LibraryName: DefaultLibraryName,
		Pattern:     DefaultPattern,
		Defines:     map[string]string{},
		Simulator:   DefaultSimulator,
		OutputPath:  DefaultOutputPath,
		Processors:  DefaultProcessors,
		Timeout:     DefaultTimeout,
		Flags:       Flags{Processors: DefaultProcessors},
	}
}

// Load creates a config from defaults, the environment and flags, in increasing precedence.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	root, err := ResolveTestRoot(flags.TestPath)
	if err != nil {
		return nil, err
	}
	cfg.TestRoot = root

	// .env is optional
	_ = godotenv.Load(filepath.Join(cfg.TestRoot, ".env"))
	cfg.applyEnv()
	cfg.Apply(flags)

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSimulator); v != "" {
		c.Simulator = v
	}
	if v := os.Getenv("HDLT_OUTPUT_PATH"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv("HDLT_PROCESSORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Processors = n
		}
	}
	if v := os.Getenv("HDLT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}
}

// Apply copies flag overrides onto the config
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Simulator != "" {
		c.Simulator = flags.Simulator
	}
	if flags.OutputPath != "" {
		c.OutputPath = flags.OutputPath
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	c.IncludeDirs = append(c.IncludeDirs, flags.IncludeDirs...)
	for k, v := range ParseDefines(flags.Defines) {
		c.Defines[k] = v
	}
}

// SimulatorOverridden reports whether the simulator was chosen by flag or environment,
// which both take precedence over a manifest
func (c *Config) SimulatorOverridden() bool {
	return c.Flags.Simulator != "" || os.Getenv(EnvSimulator) != ""
}

// GetSourceDir returns the include directory for testbenches: the --src-dir flag if set,
// otherwise the src directory next to the test root.
func (c *Config) GetSourceDir() string {
	if c.Flags.SrcDir != "" {
		if filepath.IsAbs(c.Flags.SrcDir) {
			return c.Flags.SrcDir
		}
		return filepath.Join(c.TestRoot, c.Flags.SrcDir)
	}
	return SourceDir(c.TestRoot)
}

// GetOutputDir returns the absolute output directory for simulator artifacts
func (c *Config) GetOutputDir() string {
	if filepath.IsAbs(c.OutputPath) {
		return c.OutputPath
	}
	return filepath.Join(c.TestRoot, c.OutputPath)
}

// GetOutputPath returns the full path to the output JSON file
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetOutputDir(), DefaultOutputJSONFile)
}

// GetManifestPath returns the path to the optional library manifest
func (c *Config) GetManifestPath() string {
	return filepath.Join(c.TestRoot, DefaultManifestFile)
}

// NamePatterns returns the name filters from --filter and positional arguments
func (c *Config) NamePatterns() []string {
	var patterns []string
	if c.Flags.NameFilter != "" {
		patterns = append(patterns, c.Flags.NameFilter)
	}
	return append(patterns, c.Flags.Patterns...)
}

// ParseDefines turns NAME or NAME=VALUE strings into a define map
func ParseDefines(defs []string) map[string]string {
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		if d == "" {
			continue
		}
		name, value, _ := strings.Cut(d, "=")
		out[name] = value
	}
	return out
}
