package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

// Summarizer sends a transcript to a completion service and returns the
// structured summary it produces.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*summary.Summary, error)
}
