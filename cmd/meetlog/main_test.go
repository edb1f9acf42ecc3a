package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/internal/store"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

const completionContent = `{"MeetingDetails":{"Date & Time":"2024-01-01","Location":"Room A","Participants":["Alice","Bob"]},"Objective":"Plan Q1","ActionItems":[{"Task":"Send report","Owner":"Alice","DueDate":"Friday"}]}`

func fakeCompletionServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "chatcmpl-1",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": completionContent}},
			},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "MEETLOG_PROVIDER", "MEETLOG_MODEL",
		"MEETLOG_TRANSCRIPT", "MEETLOG_STORE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("MEETLOG_BASE_URL", baseURL)
	t.Setenv("MEETLOG_LOG_LEVEL", "error")
}

func writeTranscript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standup.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice: budget is approved\nBob: I'll hire two people\n"), 0644))
	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunAppendsRow(t *testing.T) {
	setupEnv(t, fakeCompletionServer(t).URL)
	transcriptPath := writeTranscript(t)
	storePath := filepath.Join(t.TempDir(), "log.xlsx")

	for _, args := range [][]string{
		{"--transcript", transcriptPath, "--store", storePath},
		{"run", "--transcript", transcriptPath, "--store", storePath},
	} {
		out, err := execute(args...)
		require.NoError(t, err)
		assert.Equal(t, "Structured meeting summary added to "+storePath+"\n", out)
	}

	table, err := store.New(storePath, "", logger.NewNop()).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	v, _ := table.Value(1, "ActionItem_1_DueDate")
	assert.Equal(t, "Friday", v)
}

func TestRunDryRun(t *testing.T) {
	setupEnv(t, fakeCompletionServer(t).URL)
	storePath := filepath.Join(t.TempDir(), "log.xlsx")

	out, err := execute("run", "--dry-run", "--transcript", writeTranscript(t), "--store", storePath)
	require.NoError(t, err)

	assert.Contains(t, out, "Meeting_Participants=Alice, Bob\n")
	assert.Contains(t, out, "Objective=Plan Q1\n")
	assert.Contains(t, out, "ActionItem_1_Task=Send report\n")

	_, statErr := os.Stat(storePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunExitCodes(t *testing.T) {
	ts := fakeCompletionServer(t)

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		args     func(t *testing.T) []string
		wantCode int
	}{
		{
			name:  "missing transcript",
			setup: func(t *testing.T) {},
			args: func(t *testing.T) []string {
				return []string{"--transcript", filepath.Join(t.TempDir(), "missing.docx"), "--store", filepath.Join(t.TempDir(), "log.xlsx")}
			},
			wantCode: apperror.ExitCode(apperror.ErrFileNotFound("", nil)),
		},
		{
			name:  "missing api key",
			setup: func(t *testing.T) { t.Setenv("GROQ_API_KEY", "") },
			args: func(t *testing.T) []string {
				return []string{"--transcript", writeTranscript(t), "--store", filepath.Join(t.TempDir(), "log.xlsx")}
			},
			wantCode: apperror.ExitCode(apperror.ErrAuthentication("groq", nil)),
		},
		{
			name:  "explicit config file missing",
			setup: func(t *testing.T) {},
			args: func(t *testing.T) []string {
				return []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}
			},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, ts.URL)
			tt.setup(t)

			_, err := execute(tt.args(t)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.ExitCode(err), "got %v", err)
		})
	}
}

func TestRunWithConfigFile(t *testing.T) {
	ts := fakeCompletionServer(t)
	setupEnv(t, "")

	dir := t.TempDir()
	storePath := filepath.Join(dir, "log.xlsx")
	reportsDir := filepath.Join(dir, "minutes")
	configPath := filepath.Join(dir, "meetlog.yaml")
	content := "completion:\n  base_url: " + ts.URL + "\n" +
		"paths:\n  transcript: " + writeTranscript(t) + "\n  store: " + storePath + "\n  reports: " + reportsDir + "\n" +
		"store:\n  sheet: Meetings\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	out, err := execute("--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, storePath)

	table, err := store.New(storePath, "Meetings", logger.NewNop()).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Meetings", table.Sheet)
	assert.Equal(t, 1, table.Len())

	_, err = os.Stat(filepath.Join(reportsDir, "standup.docx"))
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, "meetlog version test\n", out)
}
