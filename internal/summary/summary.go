// Package summary holds the structured meeting summary returned by the
// completion service and its flattening into a single tabular row.
package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

// Summary mirrors the JSON schema requested from the completion service.
// Every key is optional; absent keys decode to zero values.
type Summary struct {
	MeetingDetails  MeetingDetails `json:"MeetingDetails"`
	Objective       string         `json:"Objective"`
	AgendaItems     []string       `json:"AgendaItems"`
	KeyDiscussions  string         `json:"KeyDiscussions"`
	DecisionsMade   string         `json:"DecisionsMade"`
	ActionItems     []ActionItem   `json:"ActionItems"`
	NextSteps       string         `json:"NextSteps"`
	AdditionalNotes string         `json:"AdditionalNotes"`
}

type MeetingDetails struct {
	DateTime     string   `json:"Date & Time"`
	Location     string   `json:"Location"`
	Participants []string `json:"Participants"`
}

type ActionItem struct {
	Task    string `json:"Task"`
	Owner   string `json:"Owner"`
	DueDate string `json:"DueDate"`
}

// Decode parses the content string of a completion into a Summary.
// The content must be a JSON object, optionally wrapped in a markdown fence.
// Fields of the wrong type are rejected rather than coerced.
func Decode(content string) (*Summary, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, apperror.ErrMalformedResponse("content is empty", nil)
	}
	if !strings.HasPrefix(raw, "{") {
		return nil, apperror.ErrMalformedResponse("content is not a JSON object", nil)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	var s Summary
	if err := dec.Decode(&s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			reason := fmt.Sprintf("field %q has type %s, want %s", typeErr.Field, typeErr.Value, typeErr.Type)
			return nil, apperror.ErrMalformedResponse(reason, err)
		}
		return nil, apperror.ErrMalformedResponse("content is not valid JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperror.ErrMalformedResponse("content has trailing data after the JSON object", nil)
	}

	return &s, nil
}

// extractJSON strips a markdown code fence some models wrap around JSON.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
