package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meetlog/internal/config"
	"github.com/nguyentantai21042004/meetlog/internal/logger"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

var errMissingAPIKey = errors.New("API key is not set")

type openAISummarizer struct {
	client *openai.Client
	cfg    config.CompletionConfig
	logger logger.Logger
}

type geminiSummarizer struct {
	client *genai.Client
	cfg    config.CompletionConfig
	logger logger.Logger
}

// New creates the Summarizer for cfg.Provider. It fails with an
// authentication error when no API key was configured.
func New(ctx context.Context, cfg config.CompletionConfig, log logger.Logger) (Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, apperror.ErrAuthentication(cfg.Provider, errMissingAPIKey)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderGroq, config.ProviderOpenAI:
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		clientCfg.HTTPClient = httpClient
		return &openAISummarizer{
			client: openai.NewClientWithConfig(clientCfg),
			cfg:    cfg,
			logger: log,
		}, nil

	case config.ProviderGemini:
		cc := &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return &geminiSummarizer{
			client: client,
			cfg:    cfg,
			logger: log,
		}, nil
	}

	return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
}
