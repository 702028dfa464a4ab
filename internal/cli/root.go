// Package cli implements the casino command tree.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/MJE43/casino-sim/internal/config"
	"github.com/spf13/cobra"
)

// Execute loads configuration from the environment, runs the command named
// by args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		err = &usageError{err: err}
		printError(stderr, err)
		return ExitCode(err)
	}
	return Run(ctx, cfg, args, stdout, stderr)
}

// Run executes args against a command tree built from cfg
func Run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(cfg, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return ExitCode(err)
}

// app carries state shared by every command
type app struct {
	cfg     config.Config
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  *slog.Logger
}

// NewRootCommand builds the command tree. Without a subcommand the root runs
// a simulation, so "casino --trials 500" and "casino run --trials 500" match.
func NewRootCommand(cfg config.Config, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	rootOpts := newRunOptions(cfg)
	rootCmd := &cobra.Command{
		Use:   "casino",
		Short: "Monte Carlo simulator for casino dice bets",
		Long: `casino plays a dice bet repeatedly with a seeded random source and
reports the hit rate and expected value per play. Results can be appended
to a SQLite database with --db and reviewed later with "casino history".`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulation(cmd.Context(), rootOpts)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	bindRunFlags(rootCmd.Flags(), rootOpts)

	rootCmd.AddCommand(
		newRunCommand(a),
		newHistoryCommand(a),
		newGamesCommand(a),
		newVersionCommand(a),
	)
	return rootCmd
}

func (a *app) setupLogger() error {
	level, err := a.cfg.Level()
	if err != nil {
		return &usageError{err: err}
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}
