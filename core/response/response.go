// Package response defines the generateContent response model along with the
// helpers the rest of the module keys decisions off: admissibility, block
// reporting, text extraction and streaming aggregation.
package response

import (
	"fmt"

	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/generate"
)

// Response is a generateContent response body. Streaming calls decode one
// Response per chunk; Aggregate folds the chunks back into a single value
// with the same shape.
type Response struct {
	Candidates     []*Candidate    `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

// Candidate is one generated completion.
type Candidate struct {
	Index            int               `json:"index"`
	Content          *content.Content  `json:"content,omitempty"`
	FinishReason     FinishReason      `json:"finishReason,omitempty"`
	FinishMessage    string            `json:"finishMessage,omitempty"`
	SafetyRatings    []*SafetyRating   `json:"safetyRatings,omitempty"`
	CitationMetadata *CitationMetadata `json:"citationMetadata,omitempty"`
}

// FinishReason explains why a candidate stopped generating.
type FinishReason string

const (
	FinishReasonStop       FinishReason = "STOP"
	FinishReasonMaxTokens  FinishReason = "MAX_TOKENS"
	FinishReasonSafety     FinishReason = "SAFETY"
	FinishReasonRecitation FinishReason = "RECITATION"
	FinishReasonLanguage   FinishReason = "LANGUAGE"
	FinishReasonOther      FinishReason = "OTHER"
)

// BlockReason explains why a prompt was rejected outright.
type BlockReason string

const (
	BlockReasonSafety BlockReason = "SAFETY"
	BlockReasonOther  BlockReason = "OTHER"
)

// PromptFeedback reports prompt-level screening results. A populated
// BlockReason means the service refused to generate at all.
type PromptFeedback struct {
	BlockReason        BlockReason     `json:"blockReason,omitempty"`
	BlockReasonMessage string          `json:"blockReasonMessage,omitempty"`
	SafetyRatings      []*SafetyRating `json:"safetyRatings,omitempty"`
}

// SafetyRating scores one harm category for a prompt or candidate.
type SafetyRating struct {
	Category    generate.HarmCategory `json:"category"`
	Probability string                `json:"probability,omitempty"`
	Blocked     bool                  `json:"blocked,omitempty"`
}

// CitationMetadata lists source attributions for a candidate.
type CitationMetadata struct {
	CitationSources []*CitationSource `json:"citationSources,omitempty"`
}

// CitationSource attributes a span of the candidate to external material.
type CitationSource struct {
	StartIndex int    `json:"startIndex,omitempty"`
	EndIndex   int    `json:"endIndex,omitempty"`
	URI        string `json:"uri,omitempty"`
	License    string `json:"license,omitempty"`
}

// UsageMetadata reports token accounting for the request.
type UsageMetadata struct {
	PromptTokenCount        int `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount    int `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount         int `json:"totalTokenCount,omitempty"`
	CachedContentTokenCount int `json:"cachedContentTokenCount,omitempty"`
}

// badFinishReasons are terminations that disqualify a candidate from being
// recorded in chat history.
var badFinishReasons = map[FinishReason]bool{
	FinishReasonSafety:     true,
	FinishReasonRecitation: true,
	FinishReasonLanguage:   true,
}

// Candidate returns the first candidate, or nil when the response has none.
func (r *Response) Candidate() *Candidate {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0]
}

// Valid reports whether resp carries an admissible completion: at least one
// candidate with content, a finish reason that is not a block, and no
// prompt-level block. Only valid responses enter chat history.
func Valid(resp *Response) bool {
	if resp == nil {
		return false
	}
	cand := resp.Candidate()
	if cand == nil || cand.Content == nil {
		return false
	}
	if badFinishReasons[cand.FinishReason] {
		return false
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return false
	}
	return true
}

// BlockMessage renders a human-readable description of why a response was
// blocked, or the empty string when it was not. A prompt-level block and a
// candidate-level block produce different phrasings.
func BlockMessage(resp *Response) string {
	if resp == nil {
		return ""
	}
	if len(resp.Candidates) == 0 && resp.PromptFeedback != nil {
		msg := "response was blocked"
		if resp.PromptFeedback.BlockReason != "" {
			msg += fmt.Sprintf(" due to %s", resp.PromptFeedback.BlockReason)
		}
		if resp.PromptFeedback.BlockReasonMessage != "" {
			msg += ": " + resp.PromptFeedback.BlockReasonMessage
		}
		return msg
	}
	if cand := resp.Candidate(); cand != nil && badFinishReasons[cand.FinishReason] {
		msg := fmt.Sprintf("candidate was blocked due to %s", cand.FinishReason)
		if cand.FinishMessage != "" {
			msg += ": " + cand.FinishMessage
		}
		return msg
	}
	return ""
}
