package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

const (
	defaultSettle = 500 * time.Millisecond
	queueSize     = 64
)

// New creates a Watcher on inputDir. Files are handed to handler one at a
// time, in the order they settle.
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   defaultSettle,
		queue:    make(chan string, queueSize),
		pending:  make(map[string]*time.Timer),
	}, nil
}
