package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"hdlt/internal/domain"
)

// BuildOutput summarizes a run into the persisted output structure
func BuildOutput(run RunInfo, results []domain.TestResult, failures []domain.TestFailure, duration time.Duration) *domain.TestResultsOutput {
	passed := 0
	failed := []string{}
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed = append(failed, r.Test.Name())
		}
	}
	sort.Strings(failed)

	if failures == nil {
		failures = []domain.TestFailure{}
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           run.ID,
			Simulator:       run.Simulator,
			TotalTests:      len(results),
			FailedTests:     len(failed),
			PassedTests:     passed,
			FailedTestCases: len(failures),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         run.Workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Failed:  failed,
		Details: failures,
	}
}

// Save writes test results and failures to the configured JSON output file.
func (s *JSONStorage) Save(run RunInfo, results []domain.TestResult, failures []domain.TestFailure, duration time.Duration) (*domain.TestResultsOutput, error) {
	output := BuildOutput(run, results, failures, duration)
	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g. after re-running selected tests).
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// FailedSet returns the names of the tests that failed in output
func FailedSet(output *domain.TestResultsOutput) map[string]struct{} {
	set := make(map[string]struct{}, len(output.Failed))
	for _, name := range output.Failed {
		set[name] = struct{}{}
	}
	return set
}
