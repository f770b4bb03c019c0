package commands

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hdlt/internal/config"
	"hdlt/internal/migration"
	"hdlt/internal/storage"
	"hdlt/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	dbManager *migration.DatabaseManager
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, dbManager *migration.DatabaseManager, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		dbManager: dbManager,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := hc.dbManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = 20
	}

	runs, err := storage.NewHistoryStore(db).Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	rows := make([]ui.HistoryRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, ui.HistoryRow{
			ID:        r.ID,
			Simulator: r.Simulator,
			Total:     r.TotalTests,
			Failed:    r.FailedTests,
			Duration:  r.DurationSeconds,
			When:      r.CreatedAt.Local().Format(time.DateTime),
		})
	}
	hc.formatter.PrintHistory(rows)
	return nil
}
