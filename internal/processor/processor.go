package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/report"
	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

// Process orchestrates the whole pipeline for one transcript. The store is
// only touched once every earlier stage has succeeded.
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	if err := p.sem.acquire(ctx); err != nil {
		return err
	}
	defer p.sem.release()

	ctx = logger.WithRunID(ctx, uuid.NewString())
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting summary: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	// Steps 1-3: transcript -> summary -> row
	s, row, err := p.summarize(ctx, transcriptPath)
	if err != nil {
		return err
	}

	// Step 4: append to the store
	if err := p.stages.Store.Append(ctx, row); err != nil {
		return fmt.Errorf("append to store: %w", err)
	}

	// Step 5: minutes document, best effort once the store is committed
	reportPath := ""
	if p.stages.Report != nil && p.cfg.Paths.Reports != "" {
		reportPath = report.PathFor(p.cfg.Paths.Reports, transcriptPath)
		if err := p.stages.Report.Write(ctx, reportPath, s); err != nil {
			p.logger.Warn(ctx, "Failed to write minutes %s: %v", reportPath, err)
			reportPath = ""
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Meeting summary completed successfully!")
	p.logger.Info(ctx, "Store: %s (%d columns written)", p.stages.Store.Path(), row.Len())
	if reportPath != "" {
		p.logger.Info(ctx, "Minutes: %s", reportPath)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implProcessor) DryRun(ctx context.Context, transcriptPath string) (*summary.Row, error) {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	p.logger.Info(ctx, "Dry run for %s, the store will not be modified", transcriptPath)

	_, row, err := p.summarize(ctx, transcriptPath)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (p *implProcessor) summarize(ctx context.Context, transcriptPath string) (*summary.Summary, *summary.Row, error) {
	// Step 1: load transcript
	tr, err := p.stages.Loader.Load(ctx, transcriptPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load transcript: %w", err)
	}

	// Step 2: request summary
	s, err := p.stages.Summarizer.Summarize(ctx, tr.Text())
	if err != nil {
		return nil, nil, fmt.Errorf("summarize: %w", err)
	}

	// Step 3: flatten
	row := summary.Flatten(s)
	p.logger.Debug(ctx, "Flattened summary into %d columns (%d action items)", row.Len(), len(s.ActionItems))

	return s, row, nil
}
