package commands

import (
	"hdlt/internal/cli"
	"hdlt/internal/config"
	"hdlt/internal/discovery"
	"hdlt/internal/migration"
	"hdlt/internal/parser"
	"hdlt/internal/storage"
	"hdlt/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Migrate  *MigrateCommand
	History  *HistoryCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := discovery.NewFilter()
	simParser := parser.NewSimParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, filter, simParser, jsonStorage, formatter, dbManager, errorViewer),
		List:     NewListCommand(cfg, filter, formatter, jsonStorage),
		Migrate:  NewMigrateCommand(cfg, migrator),
		History:  NewHistoryCommand(cfg, dbManager, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// loadConfig returns a PreRunE that loads the configuration once flags are parsed
func loadConfig(cfg *config.Config, flags *cli.Flags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags(args))
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}
}

func addPathFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Directory holding the tb_*.sv testbenches (default: current directory)")
	cmd.Flags().StringVarP(&flags.OutputPath, "output-path", "o", "", "Output directory for build artifacts and results (default: <test-path>/hdlt_out)")
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:     "run [patterns...]",
		Short:   "Compile and simulate testbenches in parallel",
		Long:    "Register tb_*.sv testbenches, compile them with ../src on the include path and run every test case with the selected simulator",
		RunE:    c.Run.Execute,
		PreRunE: loadConfig(cfg, flags),
	}
	addPathFlags(runCmd, flags)
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of parallel simulations (default 4)")
	runCmd.Flags().StringVarP(&flags.Simulator, "simulator", "s", "", "Simulator to use: icarus, questa or xsim (default icarus)")
	runCmd.Flags().StringVar(&flags.SrcDir, "src-dir", "", "Include directory for compilation (default: <test-path>/../src)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (e.g. 'lib.tb_fifo.*' or '*overflow*')")
	runCmd.Flags().StringArrayVarP(&flags.Defines, "define", "D", nil, "Preprocessor define NAME[=VALUE] (repeatable)")
	runCmd.Flags().StringArrayVarP(&flags.IncludeDirs, "include", "I", nil, "Additional include directory (repeatable)")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-test simulation timeout (default 5m)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().BoolVar(&flags.RerunFailures, "rerun-failures", false, "After running all tests, rerun only failed ones once and save that result")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run in the MySQL history database")
	runCmd.Flags().BoolVar(&flags.Clean, "clean", false, "Remove the output directory before building")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print every simulator command")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [patterns...]",
		Short:   "List discovered testbenches",
		Long:    "Register testbenches and list them without compiling or simulating",
		RunE:    c.List.Execute,
		PreRunE: loadConfig(cfg, flags),
	}
	addPathFlags(listCmd, flags)
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (e.g. 'lib.tb_fifo.*' or '*overflow*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases instead of testbenches")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the run history database",
		Long:    "Create the MySQL database and tables used by run --record",
		RunE:    c.Migrate.Execute,
		PreRunE: loadConfig(cfg, flags),
	}
	addPathFlags(migrateCmd, flags)
	rootCmd.AddCommand(migrateCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recorded runs",
		RunE:    c.History.Execute,
		PreRunE: loadConfig(cfg, flags),
	}
	addPathFlags(historyCmd, flags)
	historyCmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: loadConfig(cfg, flags),
	}
	addPathFlags(failuresCmd, flags)
	rootCmd.AddCommand(failuresCmd)
}
