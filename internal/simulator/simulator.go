// Package simulator builds the command lines used to compile, elaborate and run
// testbenches with a particular HDL simulator.
package simulator

import (
	"fmt"
	"sort"
	"strings"

	"hdlt/internal/domain"
	"hdlt/internal/project"
)

// TestPlusarg is the plusarg carrying the selected test case name into the simulation
const TestPlusarg = "TEST"

// Command is a single external command invocation
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line for logs
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Simulator produces the commands that drive an HDL simulator
type Simulator interface {
	Name() string
	// CompileCommands compiles all files of a library into workDir
	CompileCommands(lib *project.Library, workDir string) []Command
	// ElaborateCommands prepares a runnable snapshot of one testbench
	ElaborateCommands(lib *project.Library, tb domain.Testbench, workDir string) []Command
	// SimulateCommand runs one test case of an elaborated testbench
	SimulateCommand(test domain.Test, workDir, outDir string) Command
}

var registry = map[string]func() Simulator{
	"icarus": func() Simulator { return NewIcarus() },
	"questa": func() Simulator { return NewQuesta() },
	"xsim":   func() Simulator { return NewXsim() },
}

// New returns the simulator driver registered under name
func New(name string) (Simulator, error) {
	factory, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown simulator %q (supported: %s)", name, strings.Join(Supported(), ", "))
	}
	return factory(), nil
}

// Supported returns the names of all simulator drivers
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SnapshotName is the elaborated snapshot name of a testbench
func SnapshotName(tb domain.Testbench) string {
	return tb.Library + "." + tb.Top
}

func sourcePaths(lib *project.Library) []string {
	files := lib.Files()
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

// defineArgs renders defines as flag+NAME[=VALUE], or as two arguments when separate is set
func defineArgs(flag string, separate bool, defines map[string]string) []string {
	var args []string
	for _, k := range project.SortedKeys(defines) {
		def := k
		if v := defines[k]; v != "" {
			def += "=" + v
		}
		if separate {
			args = append(args, flag, def)
		} else {
			args = append(args, flag+def)
		}
	}
	return args
}
