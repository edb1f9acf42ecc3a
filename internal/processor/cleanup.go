package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (p *implProcessor) ProcessInbox(ctx context.Context, transcriptPath string) error {
	if err := p.Process(ctx, transcriptPath); err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}
	return nil
}

// moveToArchived moves a processed transcript out of the inbox. An existing
// file of the same name is never overwritten.
func (p *implProcessor) moveToArchived(ctx context.Context, transcriptPath string) error {
	archived := p.cfg.Watch.Archived
	if err := os.MkdirAll(archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(transcriptPath)
	destPath := filepath.Join(archived, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		destPath = filepath.Join(archived, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(filename, ext), time.Now().Format("20060102-150405"), ext))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat archived file: %w", err)
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}
