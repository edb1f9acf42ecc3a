package report

import (
	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

type implWriter struct {
	title  string
	logger logger.Logger
}

// New creates a Writer that produces .docx minutes.
func New(log logger.Logger) Writer {
	return &implWriter{
		title:  "Meeting Minutes",
		logger: log,
	}
}
