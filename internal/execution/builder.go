package execution

import (
	"context"
	"strings"

	"hdlt/internal/domain"
	"hdlt/internal/project"
	"hdlt/internal/simulator"
)

// BuildReport holds the build outcome of each testbench, keyed by snapshot name
type BuildReport map[string]domain.BuildResult

// Failed returns the failed build of tb, if any
func (b BuildReport) Failed(tb domain.Testbench) (domain.BuildResult, bool) {
	res, ok := b[simulator.SnapshotName(tb)]
	if !ok || res.Success {
		return domain.BuildResult{}, false
	}
	return res, true
}

// Builder compiles libraries and elaborates testbenches before simulation
type Builder struct {
	runner    *Runner
	simulator simulator.Simulator
}

// NewBuilder creates a new Builder
func NewBuilder(runner *Runner, sim simulator.Simulator) *Builder {
	return &Builder{runner: runner, simulator: sim}
}

// Build compiles every library that has testbenches and elaborates each testbench.
// Failures are recorded per testbench and do not abort the build of the others.
func (b *Builder) Build(ctx context.Context, p *project.Project, testbenches []domain.Testbench) BuildReport {
	report := make(BuildReport)
	workDir := b.runner.WorkDir()

	byLibrary := make(map[string][]domain.Testbench)
	for _, tb := range testbenches {
		byLibrary[tb.Library] = append(byLibrary[tb.Library], tb)
	}

	for _, lib := range p.Libraries() {
		tbs := byLibrary[lib.Name]
		if len(tbs) == 0 {
			continue
		}

		compiled := b.runAll(ctx, lib.Name, b.simulator.CompileCommands(lib, workDir))
		for _, tb := range tbs {
			name := simulator.SnapshotName(tb)
			if !compiled.Success {
				report[name] = domain.BuildResult{Target: name, Output: compiled.Output, Error: compiled.Error}
				continue
			}
			report[name] = b.runAll(ctx, name, b.simulator.ElaborateCommands(lib, tb, workDir))
		}
	}

	return report
}

func (b *Builder) runAll(ctx context.Context, target string, cmds []simulator.Command) domain.BuildResult {
	var output strings.Builder
	for _, cmd := range cmds {
		out, err := b.runner.Exec(ctx, cmd)
		output.WriteString(out)
		if err != nil {
			return domain.BuildResult{Target: target, Output: output.String(), Error: err}
		}
	}
	return domain.BuildResult{Target: target, Success: true, Output: output.String()}
}
