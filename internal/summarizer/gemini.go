package summarizer

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

// Summarize sends the same system instruction and prompt to Gemini with a
// JSON response MIME type.
func (s *geminiSummarizer) Summarize(ctx context.Context, transcript string) (*summary.Summary, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(s.cfg.Temperature),
		ResponseMIMEType:  "application/json",
	}

	s.logger.Info(ctx, "Requesting summary from gemini (model %s, timeout %s)", s.cfg.Model, s.cfg.Timeout)

	result, err := s.client.Models.GenerateContent(ctx, s.cfg.Model, genai.Text(userPrompt(transcript)), genCfg)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, apperror.ErrMalformedResponse("response has no candidates", nil)
	}

	return summary.Decode(result.Text())
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		status := strconv.Itoa(apiErr.Code)
		// Gemini reports a bad key as 400 INVALID_ARGUMENT.
		badKey := apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key")
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden || badKey {
			return apperror.ErrAuthentication("gemini", err).WithDetail("status", status)
		}
		return apperror.ErrNetwork("gemini", err).WithDetail("status", status)
	}
	return apperror.ErrNetwork("gemini", err)
}
