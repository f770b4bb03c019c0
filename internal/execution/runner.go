package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/fatih/color"

	"hdlt/internal/config"
	"hdlt/internal/domain"
	"hdlt/internal/parser"
	"hdlt/internal/simulator"
)

// OutputFileName is the file each test's simulator output is written to
const OutputFileName = "output.txt"

// killWaitDelay bounds how long output pipes are drained after a timed-out simulator is killed
const killWaitDelay = 2 * time.Second

// Runner executes simulator commands
type Runner struct {
	config    *config.Config
	simulator simulator.Simulator
	parser    parser.Parser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, sim simulator.Simulator, p parser.Parser) *Runner {
	return &Runner{config: cfg, simulator: sim, parser: p}
}

// WorkDir is where libraries are compiled and testbenches elaborated
func (r *Runner) WorkDir() string {
	return filepath.Join(r.config.GetOutputDir(), r.simulator.Name())
}

// TestOutputDir is the per-test directory simulations run in
func (r *Runner) TestOutputDir(test domain.Test) string {
	return filepath.Join(r.config.GetOutputDir(), "tests", test.Name())
}

// Exec runs one command and returns its combined output without ANSI escapes
func (r *Runner) Exec(ctx context.Context, cmd simulator.Command) (string, error) {
	if r.config.Flags.Verbose {
		color.HiBlack("$ %s", cmd.String())
	}
	if cmd.Dir != "" {
		if err := os.MkdirAll(cmd.Dir, 0755); err != nil {
			return "", fmt.Errorf("create %s: %w", cmd.Dir, err)
		}
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = os.Environ()
	c.WaitDelay = killWaitDelay

	output, err := c.CombinedOutput()
	clean := stripansi.Strip(string(output))

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return clean, fmt.Errorf("%s timed out: %w", cmd.Name, ctx.Err())
	case errors.Is(ctx.Err(), context.Canceled):
		return clean, fmt.Errorf("%s interrupted: %w", cmd.Name, ctx.Err())
	}
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return clean, fmt.Errorf("%s not found on PATH: %w", cmd.Name, err)
		}
		return clean, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return clean, nil
}

// Run simulates a single test case with the configured timeout
func (r *Runner) Run(ctx context.Context, test domain.Test) domain.TestResult {
	outDir := r.TestOutputDir(test)
	start := time.Now()

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := r.simulator.SimulateCommand(test, r.WorkDir(), outDir)
	output, err := r.Exec(ctx, cmd)

	result := domain.TestResult{
		Test:     test,
		Output:   output,
		Error:    err,
		Duration: time.Since(start),
		OutDir:   outDir,
	}
	result.Success = r.parser.Evaluate(result)

	// Best effort: the output is also kept in memory
	_ = os.WriteFile(filepath.Join(outDir, OutputFileName), []byte(output), 0644)

	return result
}
