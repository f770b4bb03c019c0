package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hdlt/internal/domain"
)

// HistoryStore records runs in the MySQL history tables created by `hdlt migrate`
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore wraps an open history database
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record inserts one run and its failures in a single transaction
func (h *HistoryStore) Record(ctx context.Context, output *domain.TestResultsOutput) error {
	meta := output.Meta
	created, err := time.Parse(time.RFC3339, meta.Timestamp)
	if err != nil {
		created = time.Now()
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO hdlt_runs (id, simulator, total_tests, passed_tests, failed_tests, duration_seconds, workers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Simulator, meta.TotalTests, meta.PassedTests, meta.FailedTests,
		meta.DurationSeconds, meta.Workers, created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", meta.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO hdlt_failures (run_id, test_name, file, line, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare failure insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range output.Details {
		file := f.File
		if file == "" {
			file = f.FilePath
		}
		if _, err := stmt.ExecContext(ctx, meta.RunID, f.TestName, file, f.Line, f.Message); err != nil {
			return fmt.Errorf("insert failure of %s: %w", f.TestName, err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the run history
type RunSummary struct {
	ID              string
	Simulator       string
	TotalTests      int
	FailedTests     int
	DurationSeconds float64
	CreatedAt       time.Time
}

// Recent returns the latest runs, newest first
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, simulator, total_tests, failed_tests, duration_seconds, created_at
		 FROM hdlt_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Simulator, &r.TotalTests, &r.FailedTests, &r.DurationSeconds, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
