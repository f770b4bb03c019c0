package simulator

import (
	"path/filepath"

	"hdlt/internal/domain"
	"hdlt/internal/project"
)

// Questa drives Siemens Questa / ModelSim: vlib + vlog per library, vsim per test.
type Questa struct{}

// NewQuesta creates the Questa driver
func NewQuesta() *Questa {
	return &Questa{}
}

// Name returns the driver name
func (s *Questa) Name() string {
	return "questa"
}

// CompileCommands creates the library and compiles each group of sources into it
func (s *Questa) CompileCommands(lib *project.Library, workDir string) []Command {
	libDir := filepath.Join(workDir, lib.Name)

	cmds := []Command{
		{Name: "vlib", Args: []string{libDir}, Dir: workDir},
		{Name: "vmap", Args: []string{lib.Name, libDir}, Dir: workDir},
	}
	for _, unit := range lib.CompileUnits() {
		vlog := []string{"-sv", "-quiet", "-work", libDir}
		for _, dir := range unit.IncludeDirs {
			vlog = append(vlog, "+incdir+"+dir)
		}
		vlog = append(vlog, defineArgs("+define+", false, unit.Defines)...)
		vlog = append(vlog, unit.Paths...)
		cmds = append(cmds, Command{Name: "vlog", Args: vlog, Dir: workDir})
	}
	return cmds
}

// ElaborateCommands returns nothing: vsim optimizes the design on load
func (s *Questa) ElaborateCommands(lib *project.Library, tb domain.Testbench, workDir string) []Command {
	return nil
}

// SimulateCommand runs one test case in batch mode
func (s *Questa) SimulateCommand(test domain.Test, workDir, outDir string) Command {
	tb := test.Testbench
	return Command{
		Name: "vsim",
		Args: []string{
			"-c",
			"-modelsimini", filepath.Join(workDir, "modelsim.ini"),
			"-L", tb.Library,
			"-do", "run -all; quit -f",
			"-logfile", filepath.Join(outDir, "vsim.log"),
			"+" + TestPlusarg + "=" + test.Case,
			SnapshotName(tb),
		},
		Dir: outDir,
	}
}
