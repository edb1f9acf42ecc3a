package processor

import (
	"context"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

// Processor runs the meeting pipeline: load, summarize, flatten, append.
type Processor interface {
	// Process runs the full pipeline for one transcript.
	Process(ctx context.Context, transcriptPath string) error
	// DryRun runs every stage except the store append and returns the row
	// that would have been written.
	DryRun(ctx context.Context, transcriptPath string) (*summary.Row, error)
	// ProcessInbox is Process followed by moving the transcript to the
	// archive folder. It is the handler used in watch mode.
	ProcessInbox(ctx context.Context, transcriptPath string) error
}
