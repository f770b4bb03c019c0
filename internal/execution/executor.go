package execution

import (
	"context"
	"time"

	"hdlt/internal/domain"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error)
}
