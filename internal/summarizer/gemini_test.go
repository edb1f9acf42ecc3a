package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

func newGeminiTestSummarizer(t *testing.T, url string) Summarizer {
	t.Helper()
	s, err := New(context.Background(), config.CompletionConfig{
		Provider:    config.ProviderGemini,
		BaseURL:     url,
		Model:       "gemini-2.5-flash",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
		APIKey:      "gem-test",
	}, logger.NewNop())
	require.NoError(t, err)
	return s
}

func TestGeminiSummarize_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "gem-test", r.Header.Get("x-goog-api-key"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		genCfg, _ := payload["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genCfg["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]string{{"text": summaryJSON}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer ts.Close()

	s, err := newGeminiTestSummarizer(t, ts.URL).Summarize(context.Background(), "Alice: hello")
	require.NoError(t, err)
	assert.Equal(t, "Plan Q1", s.Objective)
	assert.Equal(t, "Room A", s.MeetingDetails.Location)
}

func TestGeminiSummarize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		code    apperror.ErrorCode
	}{
		{
			name: "bad api key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
			},
			code: apperror.CodeAuthentication,
		},
		{
			name: "permission denied",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`))
			},
			code: apperror.CodeAuthentication,
		},
		{
			name: "unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
			},
			code: apperror.CodeNetwork,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			code: apperror.CodeMalformedResponse,
		},
		{
			name: "text not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"no json here"}]}}]}`))
			},
			code: apperror.CodeMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := newGeminiTestSummarizer(t, ts.URL).Summarize(context.Background(), "transcript")
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err), "got %v", err)
		})
	}
}
