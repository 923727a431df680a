package response

import "github.com/strandworks/genchat/core/content"

// Aggregate folds streamed chunks into a single response equivalent to the
// unary result: candidate parts are appended in arrival order, while
// per-candidate metadata and prompt feedback take the value from the last
// chunk that carried them. Candidates are matched across chunks by index.
func Aggregate(chunks []*Response) *Response {
	final := &Response{}
	byIndex := make(map[int]*Candidate)

	for _, chunk := range chunks {
		if chunk == nil {
			continue
		}
		if chunk.PromptFeedback != nil {
			final.PromptFeedback = chunk.PromptFeedback
		}
		if chunk.UsageMetadata != nil {
			final.UsageMetadata = chunk.UsageMetadata
		}
		if chunk.ModelVersion != "" {
			final.ModelVersion = chunk.ModelVersion
		}
		for _, cand := range chunk.Candidates {
			if cand == nil {
				continue
			}
			agg, ok := byIndex[cand.Index]
			if !ok {
				agg = &Candidate{Index: cand.Index}
				byIndex[cand.Index] = agg
				final.Candidates = append(final.Candidates, agg)
			}
			if cand.FinishReason != "" {
				agg.FinishReason = cand.FinishReason
			}
			if cand.FinishMessage != "" {
				agg.FinishMessage = cand.FinishMessage
			}
			if len(cand.SafetyRatings) > 0 {
				agg.SafetyRatings = cand.SafetyRatings
			}
			if cand.CitationMetadata != nil {
				agg.CitationMetadata = cand.CitationMetadata
			}
			if cand.Content != nil {
				if agg.Content == nil {
					agg.Content = &content.Content{Role: cand.Content.Role}
				}
				if agg.Content.Role == "" {
					agg.Content.Role = cand.Content.Role
				}
				agg.Content.Parts = append(agg.Content.Parts, cand.Content.Parts...)
			}
		}
	}
	return final
}
