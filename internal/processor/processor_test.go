package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/report"
	"github.com/nguyentantai21042004/meetlog/internal/store"
	"github.com/nguyentantai21042004/meetlog/internal/summary"
	"github.com/nguyentantai21042004/meetlog/internal/transcript"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

type fakeSummarizer struct {
	mu      sync.Mutex
	calls   int
	got     string
	summary *summary.Summary
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (*summary.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.got = text
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type failingReport struct{}

func (failingReport) Write(ctx context.Context, outputPath string, s *summary.Summary) error {
	return errors.New("disk full")
}

type fixture struct {
	cfg        *config.Config
	transcript string
	summarizer *fakeSummarizer
	store      store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.Store = filepath.Join(dir, "log.xlsx")
	cfg.Paths.Transcript = filepath.Join(dir, "inbox", "standup.txt")
	cfg.Watch.Archived = filepath.Join(dir, "archived")

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.Transcript), 0755))
	require.NoError(t, os.WriteFile(cfg.Paths.Transcript, []byte("Alice: budget\nBob: hiring\n"), 0644))

	return &fixture{
		cfg:        cfg,
		transcript: cfg.Paths.Transcript,
		summarizer: &fakeSummarizer{summary: &summary.Summary{
			Objective:   "Plan Q1",
			ActionItems: []summary.ActionItem{{Task: "Send report", Owner: "Alice"}},
		}},
		store: store.New(cfg.Paths.Store, cfg.Store.Sheet, logger.NewNop()),
	}
}

func (f *fixture) processor(rep report.Writer) Processor {
	return New(f.cfg, Stages{
		Loader:     transcript.New(logger.NewNop()),
		Summarizer: f.summarizer,
		Store:      f.store,
		Report:     rep,
	}, logger.NewNop())
}

func TestProcess(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.processor(nil).Process(context.Background(), f.transcript))

	assert.Equal(t, "Alice: budget\nBob: hiring", f.summarizer.got)

	table, err := f.store.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	v, _ := table.Value(0, summary.Objective)
	assert.Equal(t, "Plan Q1", v)
	v, _ = table.Value(0, summary.ActionItemColumn(1, "Owner"))
	assert.Equal(t, "Alice", v)
}

func TestProcessTwiceAppendsTwoRows(t *testing.T) {
	f := newFixture(t)
	p := f.processor(nil)

	require.NoError(t, p.Process(context.Background(), f.transcript))
	require.NoError(t, p.Process(context.Background(), f.transcript))

	table, err := f.store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestProcessConcurrentCallsAreSerialized(t *testing.T) {
	f := newFixture(t)
	p := f.processor(nil)

	const runs = 5
	var wg sync.WaitGroup
	errs := make(chan error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- p.Process(context.Background(), f.transcript)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	table, err := f.store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runs, table.Len())
}

func TestProcessFailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperror.ErrorCode
	}{
		{"malformed content", apperror.ErrMalformedResponse("content is not valid JSON", nil), apperror.CodeMalformedResponse},
		{"authentication", apperror.ErrAuthentication("groq", errors.New("401")), apperror.CodeAuthentication},
		{"network", apperror.ErrNetwork("groq", errors.New("timeout")), apperror.CodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.summarizer.err = tt.err

			err := f.processor(nil).Process(context.Background(), f.transcript)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))

			_, statErr := os.Stat(f.cfg.Paths.Store)
			assert.True(t, os.IsNotExist(statErr), "store must not be created")
		})
	}
}

func TestProcessMissingTranscript(t *testing.T) {
	f := newFixture(t)

	err := f.processor(nil).Process(context.Background(), filepath.Join(t.TempDir(), "nope.docx"))
	assert.Equal(t, apperror.CodeFileNotFound, apperror.CodeOf(err))
	assert.Equal(t, 0, f.summarizer.calls)
}

func TestProcessWritesReport(t *testing.T) {
	f := newFixture(t)
	f.cfg.Paths.Reports = filepath.Join(t.TempDir(), "minutes")

	require.NoError(t, f.processor(report.New(logger.NewNop())).Process(context.Background(), f.transcript))

	_, err := os.Stat(filepath.Join(f.cfg.Paths.Reports, "standup.docx"))
	assert.NoError(t, err)
}

func TestProcessReportFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.cfg.Paths.Reports = t.TempDir()

	require.NoError(t, f.processor(failingReport{}).Process(context.Background(), f.transcript))

	table, err := f.store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestDryRun(t *testing.T) {
	f := newFixture(t)

	row, err := f.processor(nil).DryRun(context.Background(), f.transcript)
	require.NoError(t, err)

	v, ok := row.Get(summary.Objective)
	assert.True(t, ok)
	assert.Equal(t, "Plan Q1", v)

	_, statErr := os.Stat(f.cfg.Paths.Store)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessInbox(t *testing.T) {
	f := newFixture(t)
	p := f.processor(nil)

	require.NoError(t, p.ProcessInbox(context.Background(), f.transcript))

	_, err := os.Stat(f.transcript)
	assert.True(t, os.IsNotExist(err), "transcript should leave the inbox")
	_, err = os.Stat(filepath.Join(f.cfg.Watch.Archived, "standup.txt"))
	assert.NoError(t, err)

	// A second file with the same name must not clobber the archived one.
	require.NoError(t, os.WriteFile(f.transcript, []byte("Carol: retro\n"), 0644))
	require.NoError(t, p.ProcessInbox(context.Background(), f.transcript))

	entries, err := os.ReadDir(f.cfg.Watch.Archived)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestProcessInboxFailureKeepsFile(t *testing.T) {
	f := newFixture(t)
	f.summarizer.err = apperror.ErrNetwork("groq", errors.New("down"))

	require.Error(t, f.processor(nil).ProcessInbox(context.Background(), f.transcript))

	_, err := os.Stat(f.transcript)
	assert.NoError(t, err)
}

func TestSemaphoreRespectsContext(t *testing.T) {
	s := newSemaphore(1)
	require.NoError(t, s.acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.acquire(ctx), context.Canceled)

	s.release()
	assert.NoError(t, s.acquire(context.Background()))
}
