package domain

import "fmt"

// Testbench is a registered testbench source file and the top module elaborated from it
type Testbench struct {
	Library     string   // Logical library the file was registered in
	Path        string   // Full path to the testbench file
	Top         string   // Top-level module name
	IncludeDirs []string // Include directories used to compile the file
	Defines     map[string]string
}

// Test represents a single simulation run: one test case of one testbench
type Test struct {
	Testbench Testbench
	Case      string // Test case name, "all" when the testbench declares none
}

// AllCases is the test case name used for testbenches without declared test cases
const AllCases = "all"

// Name returns the dotted name of the test, e.g. "lib.tb_fifo.overflow"
func (t Test) Name() string {
	return fmt.Sprintf("%s.%s.%s", t.Testbench.Library, t.Testbench.Top, t.Case)
}
