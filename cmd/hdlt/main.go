package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hdlt/internal/cli"
	"hdlt/internal/cli/commands"
	"hdlt/internal/config"
	"hdlt/internal/exitcodes"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "hdlt",
		Short:         "SystemVerilog testbench runner",
		Long:          `Discover tb_*.sv testbenches next to a ../src source tree, compile them into a library and simulate every test case in parallel with Icarus Verilog, Questa or Vivado xsim.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetArgs(args)

	// Create initial config with defaults; populated once flags are parsed
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, exitcodes.ErrTestsFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitcodes.FromError(err)
}
