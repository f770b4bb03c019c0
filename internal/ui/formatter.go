package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hdlt/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: os.Stdout}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

func (f *Formatter) println(s string) {
	fmt.Fprintln(f.out, s)
}

// PrintWarnings prints non-fatal configuration warnings
func (f *Formatter) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		f.println(yellow("warning: %s", w))
	}
}

// PrintMetaStats displays the statistics of a run and a tree of its failures
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	f.println("")
	f.println(cyan("╔═══════════════════════════════════════════════════════════════╗"))
	f.println(cyan("║                 Simulation Statistics                         ║"))
	f.println(cyan("╚═══════════════════════════════════════════════════════════════╝"))

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Run ID", meta.RunID},
		{"Simulator", meta.Simulator},
		{"Total Tests", meta.TotalTests},
		{"Passed Tests", green("%d", meta.PassedTests)},
		{"Failed Tests", red("%d", meta.FailedTests)},
		{"Failure Reports", red("%d", meta.FailedTestCases)},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Workers", meta.Workers},
		{"Timestamp", meta.Timestamp},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 31},
		{Number: 2, WidthMin: 27, Align: text.AlignLeft},
	})
	t.Render()

	f.println("")
	if meta.FailedTests == 0 {
		f.println(green("✓ All tests passed!"))
		return
	}

	f.println(red("✗ %d test(s) failed with %d failure report(s)", meta.FailedTests, meta.FailedTestCases))
	f.println("")
	f.printFailedTestsTree(output.Failed)
}

// TreeNode represents a node in the library/testbench/test case tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
}

// printFailedTestsTree prints failed tests grouped by library and testbench
func (f *Formatter) printFailedTestsTree(failed []string) {
	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, name := range failed {
		current := root
		for _, part := range strings.SplitN(name, ".", 3) {
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{Name: part, Children: make(map[string]*TreeNode)}
			}
			current = current.Children[part]
		}
	}
	f.printTreeNode(root, "", 0)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, depth int) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		var label string
		switch depth {
		case 0:
			label = cyan("%s", child.Name)
		case 1:
			label = yellow("%s", child.Name)
		default:
			label = red("%s", child.Name)
		}
		f.println(prefix + connector + label)
		f.printTreeNode(child, prefix+childPrefix, depth+1)
	}
}

// PrintTestList prints discovered testbenches, optionally with their test cases.
// Tests in failed (from the last run) are marked with [F].
func (f *Formatter) PrintTestList(tests []domain.Test, showTestCases bool, failed map[string]struct{}) {
	type bench struct {
		tb    domain.Testbench
		cases []domain.Test
	}
	var benches []*bench
	index := make(map[string]*bench)
	for _, test := range tests {
		key := test.Testbench.Library + "." + test.Testbench.Top
		b, ok := index[key]
		if !ok {
			b = &bench{tb: test.Testbench}
			index[key] = b
			benches = append(benches, b)
		}
		b.cases = append(b.cases, test)
	}

	if !showTestCases {
		f.println(green("Found %d testbench(es):", len(benches)))
		f.println("")
		for i, b := range benches {
			connector := "├── "
			if i == len(benches)-1 {
				connector = "└── "
			}
			marker := ""
			for _, c := range b.cases {
				if _, ok := failed[c.Name()]; ok {
					marker = " " + red("[F]")
					break
				}
			}
			f.println(connector + cyan("%s.%s", b.tb.Library, b.tb.Top) + "  " + b.tb.Path + marker)
		}
		return
	}

	f.println(green("Found %d test(s) in %d testbench(es):", len(tests), len(benches)))
	f.println("")
	for i, b := range benches {
		lastBench := i == len(benches)-1
		connector, childPrefix := "├── ", "│   "
		if lastBench {
			connector, childPrefix = "└── ", "    "
		}
		f.println(connector + cyan("%s.%s", b.tb.Library, b.tb.Top))

		for j, c := range b.cases {
			caseConnector := "├── "
			if j == len(b.cases)-1 {
				caseConnector = "└── "
			}
			marker := ""
			if _, ok := failed[c.Name()]; ok {
				marker = " " + red("[F]")
			}
			f.println(childPrefix + caseConnector + yellow("%s", c.Case) + marker)
		}

		if !lastBench {
			f.println("")
		}
	}
}

// PrintBuildFailures prints the output of testbenches that failed to compile or elaborate
func (f *Formatter) PrintBuildFailures(results []domain.BuildResult) {
	for _, r := range results {
		f.println(red("✗ build failed: %s", r.Target))
		if r.Error != nil {
			f.println(red("  %v", r.Error))
		}
		for _, line := range strings.Split(strings.TrimRight(r.Output, "\n"), "\n") {
			if line != "" {
				f.println("  " + line)
			}
		}
	}
}

// HistoryRow is one run shown by PrintHistory
type HistoryRow struct {
	ID        string
	Simulator string
	Total     int
	Failed    int
	Duration  float64
	When      string
}

// PrintHistory prints recent runs as a table
func (f *Formatter) PrintHistory(rows []HistoryRow) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Simulator", "Tests", "Failed", "Duration", "When"})
	for _, r := range rows {
		failed := green("%d", r.Failed)
		if r.Failed > 0 {
			failed = red("%d", r.Failed)
		}
		t.AppendRow(table.Row{r.ID, r.Simulator, r.Total, failed, fmt.Sprintf("%.2fs", r.Duration), r.When})
	}
	t.Render()
}
