package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hdlt/internal/config"
	"hdlt/internal/discovery"
	"hdlt/internal/project"
	"hdlt/internal/storage"
	"hdlt/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	p, err := project.Load(lc.config)
	if err != nil {
		return err
	}
	lc.formatter.PrintWarnings(p.Warnings())

	tests, err := p.Tests()
	if err != nil {
		return err
	}
	tests = lc.filter.FilterByName(tests, lc.config.NamePatterns()...)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Mark failures of the last run when results exist
	var failed map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failed = storage.FailedSet(last)
	}

	lc.formatter.PrintTestList(tests, lc.config.Flags.TestCases, failed)
	return nil
}
