package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

var supportedFormats = []string{".docx", ".txt", ".srt"}

type implWatcher struct {
	inputDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
	queue    chan string

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

// Start picks up transcripts already in the inbox, then monitors it for new
// ones until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(supportedFormats, ", "))

	w.wg.Add(1)
	go w.worker(ctx)

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan inbox: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isTranscriptFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// worker runs the handler for queued files strictly one after another.
func (w *implWatcher) worker(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			if _, err := os.Stat(path); err != nil {
				w.logger.Debug(ctx, "Skipping %s: %v", path, err)
				continue
			}
			if err := w.handler(ctx, path); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}
		}
	}
}

// schedule queues path once it has seen no events for the settle period,
// so a transcript still being copied in is not read half-written.
func (w *implWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}

	w.logger.Info(ctx, "New transcript detected: %s", path)
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.enqueue(ctx, path)
	})
}

func (w *implWatcher) enqueue(ctx context.Context, path string) {
	select {
	case w.queue <- path:
	case <-ctx.Done():
	}
}

func (w *implWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !isTranscriptFile(e.Name()) {
			continue
		}
		path := filepath.Join(w.inputDir, e.Name())
		w.logger.Info(ctx, "Found pending transcript: %s", path)
		w.enqueue(ctx, path)
	}
	return nil
}

// isTranscriptFile checks if the file has a supported transcript extension.
// Editor lock files and hidden files are skipped.
func isTranscriptFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}
