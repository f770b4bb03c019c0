package simulator

import (
	"path/filepath"

	"hdlt/internal/domain"
	"hdlt/internal/project"
)

// Icarus drives Icarus Verilog. Compilation and elaboration happen in one
// iverilog call per testbench; vvp runs the resulting image.
type Icarus struct{}

// NewIcarus creates the Icarus Verilog driver
func NewIcarus() *Icarus {
	return &Icarus{}
}

// Name returns the driver name
func (s *Icarus) Name() string {
	return "icarus"
}

// CompileCommands returns nothing: iverilog compiles per top module
func (s *Icarus) CompileCommands(lib *project.Library, workDir string) []Command {
	return nil
}

// ElaborateCommands compiles the library with tb as the root module.
// iverilog applies -I and -D to the whole compile, so the testbench's own settings are used.
func (s *Icarus) ElaborateCommands(lib *project.Library, tb domain.Testbench, workDir string) []Command {
	args := []string{"-g2012", "-o", s.image(tb, workDir), "-s", tb.Top}
	for _, dir := range tb.IncludeDirs {
		args = append(args, "-I", dir)
	}
	args = append(args, defineArgs("-D", false, tb.Defines)...)
	args = append(args, sourcePaths(lib)...)

	return []Command{{Name: "iverilog", Args: args, Dir: workDir}}
}

// SimulateCommand runs the compiled image for a single test case
func (s *Icarus) SimulateCommand(test domain.Test, workDir, outDir string) Command {
	return Command{
		Name: "vvp",
		Args: []string{"-n", s.image(test.Testbench, workDir), "+" + TestPlusarg + "=" + test.Case},
		Dir:  outDir,
	}
}

func (s *Icarus) image(tb domain.Testbench, workDir string) string {
	return filepath.Join(workDir, SnapshotName(tb)+".vvp")
}
