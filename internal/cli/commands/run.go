package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hdlt/internal/config"
	"hdlt/internal/discovery"
	"hdlt/internal/domain"
	"hdlt/internal/execution"
	"hdlt/internal/exitcodes"
	"hdlt/internal/migration"
	"hdlt/internal/parser"
	"hdlt/internal/project"
	"hdlt/internal/simulator"
	"hdlt/internal/storage"
	"hdlt/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	parser    *parser.SimParser
	storage   storage.Storage
	formatter *ui.Formatter
	dbManager *migration.DatabaseManager
	viewer    ui.Viewer

	newSimulator func(name string) (simulator.Simulator, error)
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	simParser *parser.SimParser,
	st storage.Storage,
	formatter *ui.Formatter,
	dbManager *migration.DatabaseManager,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		parser:    simParser,
		storage:   st,
		formatter: formatter,
		dbManager: dbManager,
		viewer:    viewer,

		newSimulator: simulator.New,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Register libraries and discover tests
	p, err := project.Load(rc.config)
	if err != nil {
		return err
	}
	rc.formatter.PrintWarnings(p.Warnings())

	tests, err := p.Tests()
	if err != nil {
		return err
	}
	tests = rc.filter.FilterByName(tests, rc.config.NamePatterns()...)

	if rc.config.Flags.OnlyFailed {
		tests, err = rc.onlyFailed(tests)
		if err != nil {
			return err
		}
	}

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	sim, err := rc.newSimulator(rc.config.Simulator)
	if err != nil {
		return err
	}

	if rc.config.Flags.Clean {
		if err := os.RemoveAll(rc.config.GetOutputDir()); err != nil {
			return fmt.Errorf("clean output directory: %w", err)
		}
	}

	runner := execution.NewRunner(rc.config, sim, rc.parser)

	// Compile libraries and elaborate testbenches
	testbenches := uniqueTestbenches(tests)
	color.Cyan("Building %d testbench(es) with %s...", len(testbenches), sim.Name())
	report := execution.NewBuilder(runner, sim).Build(ctx, p, testbenches)
	rc.formatter.PrintBuildFailures(failedBuilds(report))

	// Execute tests
	pool := execution.NewWorkerPool(rc.config, runner)
	pool.SetBuildReport(report)
	pool.SetProgress(ui.NewProgressBar(len(tests), "Simulating: "))

	results, duration, err := pool.ExecuteWithOptions(ctx, tests, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}
	// Killed simulations are not test failures and the last results stay untouched
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	if rc.config.Flags.RerunFailures {
		results, err = rc.rerunFailures(ctx, pool, results)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}
	}

	// Parse failures
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result)...)
		}
	}

	// Save results
	run := storage.RunInfo{ID: uuid.New().String(), Simulator: sim.Name(), Workers: rc.config.Processors}
	output, err := rc.storage.Save(run, results, failures, duration)
	if err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if rc.config.Flags.Record {
		if err := rc.record(ctx, output); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedTests == 0 {
		return nil
	}
	if rc.config.Flags.OpenFailures && rc.viewer != nil {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d tests failed: %w", output.Meta.FailedTests, output.Meta.TotalTests, exitcodes.ErrTestsFailed)
}

// onlyFailed keeps tests that failed in the last saved run
func (rc *RunCommand) onlyFailed(tests []domain.Test) ([]domain.Test, error) {
	last, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("--failed needs a previous run: %w", err)
	}
	failed := storage.FailedSet(last)

	var kept []domain.Test
	for _, t := range tests {
		if _, ok := failed[t.Name()]; ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

// rerunFailures runs failed tests once more and replaces their results
func (rc *RunCommand) rerunFailures(ctx context.Context, pool *execution.WorkerPool, results []domain.TestResult) ([]domain.TestResult, error) {
	var retry []domain.Test
	for _, r := range results {
		if !r.Success {
			retry = append(retry, r.Test)
		}
	}
	if len(retry) == 0 {
		return results, nil
	}

	color.Yellow("Re-running %d failed test(s)...", len(retry))
	pool.SetProgress(ui.NewProgressBar(len(retry), "Re-running: "))
	rerun, _, err := pool.Execute(ctx, retry)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.TestResult, len(rerun))
	for _, r := range rerun {
		byName[r.Test.Name()] = r
	}
	for i, r := range results {
		if updated, ok := byName[r.Test.Name()]; ok {
			results[i] = updated
		}
	}
	return results, nil
}

func (rc *RunCommand) record(ctx context.Context, output *domain.TestResultsOutput) error {
	db, err := rc.dbManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return storage.NewHistoryStore(db).Record(ctx, output)
}

func uniqueTestbenches(tests []domain.Test) []domain.Testbench {
	seen := make(map[string]bool)
	var testbenches []domain.Testbench
	for _, t := range tests {
		name := simulator.SnapshotName(t.Testbench)
		if !seen[name] {
			seen[name] = true
			testbenches = append(testbenches, t.Testbench)
		}
	}
	return testbenches
}

func failedBuilds(report execution.BuildReport) []domain.BuildResult {
	var failed []domain.BuildResult
	for _, r := range report {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].Target < failed[j].Target })
	return failed
}
