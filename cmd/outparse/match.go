package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/outparse/catalog"
	"github.com/randalmurphal/outparse/truncate"
)

type matchOptions struct {
	catalog string
	watch   bool
	poll    bool
	output  string
	inputs  []string
}

func newMatchCmd() *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match [INPUT...]",
		Short: "Match inputs against every template in a catalog",
		Long: `Match tries each template of the catalog, in file order, against each INPUT
and each line of the --input files, or each stdin line when neither is given.
The first template that extracts the input wins.

Inputs that match no template are logged and counted; the command exits with
status 2 when any input matched nothing.

With --watch the catalog file is reloaded whenever it changes, which suits
long-running pipelines such as tail -f. A reload that fails keeps the
previous templates.`,
		Example: `  outparse match -c patterns.yaml "x=1, y=2"
  tail -f app.log | outparse match -c patterns.yaml --watch -o text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.catalog, "catalog", "c", "", "Catalog file: .yaml, .yml, .toml or .json (required)")
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "Read lines from FILE; .gz and .zst are decompressed (repeatable)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the catalog when the file changes")
	cmd.Flags().BoolVar(&opts.poll, "poll", false, "With --watch, poll the file instead of using file events")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatJSON, "Output format: json, yaml or text")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runMatch(cmd *cobra.Command, opts *matchOptions, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	current, err := catalogSource(ctx, opts)
	if err != nil {
		return err
	}

	out, err := newRecordWriter(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	var read, unmatched int
	err = inputSource{args: args, files: opts.inputs, stdin: cmd.InOrStdin()}.each(func(input string) error {
		read++
		r, err := current().Match(input)
		if err != nil {
			unmatched++
			slog.Warn("input matched no template",
				slog.Int("input", read),
				slog.String("preview", truncate.ToMiddle(input, previewRunes)))
			return nil
		}
		return out.Write(r)
	})
	if err != nil {
		return err
	}

	if unmatched > 0 {
		return fmt.Errorf("%d of %d inputs: %w", unmatched, read, catalog.ErrNoMatch)
	}
	return nil
}

// catalogSource loads the catalog once, or with --watch starts a watcher
// that runs until ctx ends, and returns a function yielding the current set.
func catalogSource(ctx context.Context, opts *matchOptions) (func() *catalog.Set, error) {
	if !opts.watch {
		set, err := catalog.LoadSet(opts.catalog, nil)
		if err != nil {
			return nil, err
		}
		return func() *catalog.Set { return set }, nil
	}

	var wopts []catalog.WatcherOption
	if opts.poll {
		wopts = append(wopts, catalog.WithPolling())
	}
	w, err := catalog.NewWatcher(opts.catalog, nil, wopts...)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("catalog watcher stopped", slog.Any("error", err))
		}
	}()
	return w.Set, nil
}
