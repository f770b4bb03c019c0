package execution

import (
	"context"
	"sort"
	"sync"
	"time"

	"hdlt/internal/config"
	"hdlt/internal/domain"
	"hdlt/internal/ui"
)

// TestRunner runs a single test
type TestRunner interface {
	Run(ctx context.Context, test domain.Test) domain.TestResult
}

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config   *config.Config
	runner   TestRunner
	progress *ui.ProgressBar
	builds   BuildReport
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner TestRunner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// SetBuildReport makes tests of testbenches that failed to build fail without simulating
func (wp *WorkerPool) SetBuildReport(report BuildReport) {
	wp.builds = report
}

// Execute executes tests in parallel using worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, tests, false)
}

// ExecuteWithOptions executes tests with optional fail-fast (stop on first failure).
// Results are sorted by test name.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, tests []domain.Test, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	testQueue := make(chan domain.Test)
	results := make(chan domain.TestResult, len(tests))

	go func() {
		defer close(testQueue)
		for _, test := range tests {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case testQueue <- test:
			}
		}
	}()

	var mu sync.Mutex
	var passed, failed int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(len(tests)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for test := range testQueue {
				if failFast && ctx.Err() != nil {
					continue
				}
				result := wp.run(ctx, test)

				mu.Lock()
				if failFast && seenFailure {
					// Results finishing after the first failure are dropped
					mu.Unlock()
					continue
				}
				results <- result
				if result.Success {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				if failFast && !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.TestResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Test.Name() < allResults[j].Test.Name()
	})
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) run(ctx context.Context, test domain.Test) domain.TestResult {
	if build, failed := wp.builds.Failed(test.Testbench); failed {
		return domain.TestResult{
			Test:    test,
			Success: false,
			Output:  build.Output,
			Error:   build.Error,
		}
	}
	return wp.runner.Run(ctx, test)
}

func (wp *WorkerPool) workerCount(tests int) int {
	n := wp.config.Processors
	if n <= 0 {
		n = 1
	}
	if n > tests {
		n = tests
	}
	return n
}
