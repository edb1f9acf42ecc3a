package store

import (
	"context"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

// Store is the spreadsheet that accumulates one row per summarized meeting.
type Store interface {
	// Append adds row to the store, creating it if needed. The whole file is
	// rewritten; columns unknown to the store extend the header.
	Append(ctx context.Context, row *summary.Row) error
	// Read returns the current contents. A missing store reads as empty.
	Read(ctx context.Context) (Table, error)
	Path() string
}
