package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/strandworks/genchat/core/content"
)

// Text returns the concatenated text parts of the first candidate, or the
// empty string when the response has no textual content.
func (r *Response) Text() string {
	cand := r.Candidate()
	if cand == nil {
		return ""
	}
	return cand.Content.Joined()
}

// FunctionCalls returns the function call parts of the first candidate, in
// the order the model emitted them.
func (r *Response) FunctionCalls() []*content.FunctionCall {
	cand := r.Candidate()
	if cand == nil || cand.Content == nil {
		return nil
	}
	var calls []*content.FunctionCall
	for _, p := range cand.Content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Into decodes the response text into v as JSON. Model output is frequently
// almost-JSON (fenced, truncated quotes, trailing commas), so a strict parse
// failure falls back to repairing the text before decoding again.
func (r *Response) Into(v any) error {
	text := stripFences(r.Text())
	if text == "" {
		return fmt.Errorf("decode response: no text content")
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return fmt.Errorf("repair response text: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, from model output.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
