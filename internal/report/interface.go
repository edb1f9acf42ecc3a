package report

import (
	"context"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

// Writer renders a Summary into a human-readable minutes document.
type Writer interface {
	Write(ctx context.Context, outputPath string, s *summary.Summary) error
}
