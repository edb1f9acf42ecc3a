package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/watcher"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	var inbox, archived string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Summarize every transcript dropped into the inbox folder",
		Long: `Monitor the inbox folder and run the pipeline once for each new transcript
(.docx, .txt or .srt). Runs happen one at a time. A transcript is moved to
the archived folder after its row has been appended; failed transcripts
stay in the inbox.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			if inbox != "" {
				cfg.Watch.Inbox = inbox
			}
			if archived != "" {
				cfg.Watch.Archived = archived
			}
			return runWatch(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&inbox, "inbox", "", "Folder to watch (overrides watch.inbox)")
	cmd.Flags().StringVar(&archived, "archived", "", "Folder for processed transcripts (overrides watch.archived)")

	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Log Watcher")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Provider: %s (%s)", cfg.Completion.Provider, cfg.Completion.Model)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	proc, err := newProcessor(ctx, cfg, log)
	if err != nil {
		return err
	}

	w, err := watcher.New(cfg.Watch.Inbox, proc.ProcessInbox, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Log is ready!")
	log.Info(ctx, "Inbox: %s", cfg.Watch.Inbox)
	log.Info(ctx, "Archived: %s", cfg.Watch.Archived)
	log.Info(ctx, "Store: %s", cfg.Paths.Store)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watcher: %w", err)
		}
		return nil
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := <-errChan; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(ctx, "Meeting Log stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Watch.Inbox,
		cfg.Watch.Archived,
	}
	if cfg.Paths.Reports != "" {
		dirs = append(dirs, cfg.Paths.Reports)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
