package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fatih/color"

	"hdlt/internal/config"
)

// Statements creates the run history tables; each one is idempotent
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS hdlt_runs (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		simulator VARCHAR(32) NOT NULL,
		total_tests INT NOT NULL,
		passed_tests INT NOT NULL,
		failed_tests INT NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		workers INT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS hdlt_failures (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		test_name VARCHAR(255) NOT NULL,
		file VARCHAR(1024) NOT NULL,
		line INT NOT NULL,
		message TEXT NOT NULL,
		INDEX idx_failures_run (run_id),
		INDEX idx_failures_test (test_name)
	)`,
}

// SchemaMigrator creates the history database and tables
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run creates the database if needed and applies all statements
func (sm *SchemaMigrator) Run(ctx context.Context) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Migrating Run History Database               ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	db, err := sm.databaseManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := Apply(ctx, db); err != nil {
		return err
	}

	color.Green("✓ Applied %d schema statement(s)", len(Statements))
	return nil
}

// Apply executes every schema statement in order
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range Statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
