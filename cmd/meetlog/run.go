package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

type runOptions struct {
	transcript string
	store      string
	dryRun     bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Summarize one transcript and append it to the store",
		Long: `Load the configured transcript, request a structured summary from the
completion service, flatten it and append it as one row to the store.

With --dry-run the store is left untouched and the flattened row is
printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, global, opts)
		},
	}
	addRunFlags(cmd, opts)

	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.transcript, "transcript", "", "Transcript to summarize (overrides paths.transcript)")
	cmd.Flags().StringVar(&opts.store, "store", "", "Spreadsheet to append to (overrides paths.store)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the flattened row instead of writing it")
}

func runPipeline(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	if opts.transcript != "" {
		cfg.Paths.Transcript = opts.transcript
	}
	if opts.store != "" {
		cfg.Paths.Store = opts.store
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, err := newProcessor(ctx, cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.dryRun {
		row, err := proc.DryRun(ctx, cfg.Paths.Transcript)
		if err != nil {
			return err
		}
		for _, col := range row.Columns() {
			v, _ := row.Get(col)
			fmt.Fprintf(out, "%s=%s\n", col, v)
		}
		return nil
	}

	if err := proc.Process(ctx, cfg.Paths.Transcript); err != nil {
		return err
	}

	fmt.Fprintf(out, "Structured meeting summary added to %s\n", cfg.Paths.Store)
	return nil
}
