package transcript

import "context"

// Loader reads a transcript document into plain-text paragraphs.
type Loader interface {
	Load(ctx context.Context, path string) (Transcript, error)
}
