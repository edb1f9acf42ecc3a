package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/processor"
	"github.com/nguyentantai21042004/meetlog/internal/report"
	"github.com/nguyentantai21042004/meetlog/internal/store"
	"github.com/nguyentantai21042004/meetlog/internal/summarizer"
	"github.com/nguyentantai21042004/meetlog/internal/transcript"
)

const defaultConfigPath = "config.yaml"

type globalOptions struct {
	configPath string
	configSet  bool
}

func newRootCmd(version string) *cobra.Command {
	global := &globalOptions{}
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "meetlog",
		Short: "Summarizes meeting transcripts into a spreadsheet log",
		Long: `meetlog reads a meeting transcript, asks a language model for a structured
summary, and appends that summary as one row to a spreadsheet log.

Running meetlog without a subcommand is the same as "meetlog run".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			global.configSet = cmd.Flags().Changed("config")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, global, opts)
		},
	}
	cmd.SetVersionTemplate(`{{printf "meetlog version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&global.configPath, "config", defaultConfigPath, "Path to the YAML config file")
	addRunFlags(cmd, opts)

	cmd.AddCommand(newRunCmd(global))
	cmd.AddCommand(newWatchCmd(global))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

// loadConfig reads the config file. The default path is optional; an
// explicitly given one must exist.
func loadConfig(global *globalOptions) (*config.Config, error) {
	path := global.configPath
	if !global.configSet {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path)
}

// newProcessor wires every pipeline stage from cfg.
func newProcessor(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	sum, err := summarizer.New(ctx, cfg.Completion, log)
	if err != nil {
		return nil, err
	}

	stages := processor.Stages{
		Loader:     transcript.New(log),
		Summarizer: sum,
		Store:      store.New(cfg.Paths.Store, cfg.Store.Sheet, log),
	}
	if cfg.Paths.Reports != "" {
		stages.Report = report.New(log)
	}

	return processor.New(cfg, stages, log), nil
}
