package transcript

import (
	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

type implLoader struct {
	logger logger.Logger
}

// New creates a Loader for .docx, .txt and .srt transcripts.
func New(log logger.Logger) Loader {
	return &implLoader{
		logger: log,
	}
}
