package processor

import (
	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/report"
	"github.com/nguyentantai21042004/meetlog/internal/store"
	"github.com/nguyentantai21042004/meetlog/internal/summarizer"
	"github.com/nguyentantai21042004/meetlog/internal/transcript"
)

// Stages groups the components a Processor drives. Report may be nil.
type Stages struct {
	Loader     transcript.Loader
	Summarizer summarizer.Summarizer
	Store      store.Store
	Report     report.Writer
}

type implProcessor struct {
	cfg    *config.Config
	stages Stages
	logger logger.Logger
	sem    *semaphore
}

// New creates a new Processor instance
func New(cfg *config.Config, stages Stages, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		stages: stages,
		logger: log,
		sem:    newSemaphore(1),
	}
}
