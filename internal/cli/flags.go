package cli

import (
	"time"

	"hdlt/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Processors    int
	Simulator     string
	OutputPath    string
	TestPath      string
	SrcDir        string
	NameFilter    string
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
	HistoryLimit  int
}

// ToConfigFlags converts CLI flags to config flags; args are positional test name patterns
func (f *Flags) ToConfigFlags(args []string) config.Flags {
	return config.Flags{
		Processors:    f.Processors,
		Simulator:     f.Simulator,
		OutputPath:    f.OutputPath,
		TestPath:      f.TestPath,
		SrcDir:        f.SrcDir,
		NameFilter:    f.NameFilter,
		Patterns:      args,
		Defines:       f.Defines,
		IncludeDirs:   f.IncludeDirs,
		Timeout:       f.Timeout,
		TestCases:     f.TestCases,
		FailFast:      f.FailFast,
		OnlyFailed:    f.OnlyFailed,
		RerunFailures: f.RerunFailures,
		OpenFailures:  f.OpenFailures,
		Record:        f.Record,
		Clean:         f.Clean,
		Verbose:       f.Verbose,
	}
}
