package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

// Summarize sends one chat completion constrained to a JSON object and
// decodes choices[0].message.content. There is no retry.
func (s *openAISummarizer) Summarize(ctx context.Context, transcript string) (*summary.Summary, error) {
	temperature := s.cfg.Temperature
	if temperature == 0 {
		// go-openai drops a zero temperature (omitempty), which lets the server apply its default.
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(transcript)},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	s.logger.Info(ctx, "Requesting summary from %s (model %s, timeout %s)", s.cfg.Provider, s.cfg.Model, s.cfg.Timeout)
	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(s.cfg.Provider, err)
	}

	s.logger.Debug(ctx, "Completion received in %s (%d prompt tokens, %d completion tokens)",
		time.Since(start).Round(time.Millisecond), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return nil, apperror.ErrMalformedResponse("response has no choices", nil)
	}

	return summary.Decode(resp.Choices[0].Message.Content)
}

func classifyOpenAIError(provider string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperror.ErrAuthentication(provider, err).WithDetail("status", strconv.Itoa(status))
	case status != 0:
		return apperror.ErrNetwork(provider, err).WithDetail("status", strconv.Itoa(status))
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return apperror.ErrMalformedResponse("response envelope is not valid JSON", err)
	}

	return apperror.ErrNetwork(provider, err)
}
