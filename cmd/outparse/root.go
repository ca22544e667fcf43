package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "outparse",
		Short: "Extract typed values from text with templates",
		Long: `outparse reads text lines and extracts values from them using templates
with named placeholders, such as "x={x}, y={y}". Values are converted to
the declared field types and printed as JSON, YAML or text.

Templates are given on the command line with extract, or loaded from a
catalog file (YAML, TOML or JSON) with match and check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts.verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newRenderCmd())
	return cmd
}

// Execute runs cmd until it finishes or the process is interrupted.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cmd.ExecuteContext(ctx)
}

// setupLogging installs a text handler on the command's stderr.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
