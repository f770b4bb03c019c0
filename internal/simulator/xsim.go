package simulator

import (
	"fmt"
	"path/filepath"

	"hdlt/internal/domain"
	"hdlt/internal/project"
)

// Xsim drives the Vivado simulator: xvlog per library, xelab per testbench, xsim per test.
type Xsim struct{}

// NewXsim creates the Vivado xsim driver
func NewXsim() *Xsim {
	return &Xsim{}
}

// Name returns the driver name
func (s *Xsim) Name() string {
	return "xsim"
}

// CompileCommands parses each group of sources of the library into its work library
func (s *Xsim) CompileCommands(lib *project.Library, workDir string) []Command {
	var cmds []Command
	for i, unit := range lib.CompileUnits() {
		logFile := filepath.Join(workDir, fmt.Sprintf("%s.%d.xvlog.log", lib.Name, i))
		args := []string{"--sv", "--work", lib.Name, "--log", logFile}
		for _, dir := range unit.IncludeDirs {
			args = append(args, "-i", dir)
		}
		args = append(args, defineArgs("-d", true, unit.Defines)...)
		args = append(args, unit.Paths...)
		cmds = append(cmds, Command{Name: "xvlog", Args: args, Dir: workDir})
	}
	return cmds
}

// ElaborateCommands builds a snapshot named after the testbench
func (s *Xsim) ElaborateCommands(lib *project.Library, tb domain.Testbench, workDir string) []Command {
	return []Command{{
		Name: "xelab",
		Args: []string{
			"--lib", tb.Library,
			"--snapshot", SnapshotName(tb),
			"--log", filepath.Join(workDir, SnapshotName(tb)+".xelab.log"),
			tb.Library + "." + tb.Top,
		},
		Dir: workDir,
	}}
}

// SimulateCommand runs the snapshot to completion
func (s *Xsim) SimulateCommand(test domain.Test, workDir, outDir string) Command {
	return Command{
		Name: "xsim",
		Args: []string{
			SnapshotName(test.Testbench),
			"--xsimdir", filepath.Join(workDir, "xsim.dir"),
			"--runall",
			"--log", filepath.Join(outDir, "xsim.log"),
			"--testplusarg", TestPlusarg + "=" + test.Case,
		},
		Dir: outDir,
	}
}
