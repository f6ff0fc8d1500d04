package analysis

import (
	"encoding/json"
	"strings"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// headedSummary is the structured form the text tasks are asked to return.
type headedSummary struct {
	Heading string `json:"heading"`
	Summary string `json:"summary"`
}

// formatHeadedSummary parses the expected {"heading","summary"} object and
// renders it as display text. Completion output is not contractually valid
// JSON: on parse failure the raw text is preserved as the summary, with the
// structured heading left empty.
func formatHeadedSummary(raw string) string {
	candidate := extractFencedBlock(raw)
	if candidate == "" {
		candidate = strings.TrimSpace(raw)
	}

	var hs headedSummary
	if err := json.Unmarshal([]byte(candidate), &hs); err != nil || hs.Summary == "" {
		return strings.TrimSpace(raw)
	}
	if hs.Heading == "" {
		return hs.Summary
	}
	return hs.Heading + "\n\n" + hs.Summary
}

// parseChartSpec extracts a chart spec from completion output. It returns a
// nil spec with an explanatory insight when the model reported no data or the
// output could not be parsed into a valid spec; the raw text is preserved in
// the insight so nothing is silently discarded.
func parseChartSpec(raw string) (*domain.ChartSpec, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.Contains(trimmed, domain.NoDataMarker) {
		return nil, domain.NoDataMarker
	}

	candidate := extractFencedBlock(trimmed)
	if candidate == "" {
		// no fence: accept a bare JSON object, nothing else
		if !strings.HasPrefix(trimmed, "{") {
			return nil, trimmed
		}
		candidate = trimmed
	}

	var spec domain.ChartSpec
	if err := json.Unmarshal([]byte(candidate), &spec); err != nil {
		return nil, trimmed
	}
	if err := spec.Validate(); err != nil {
		return nil, trimmed
	}
	return &spec, "Chart generated from retrieved data."
}

// extractFencedBlock returns the content of the first fenced code block,
// preferring a ```json fence, or "" when no complete fence exists.
func extractFencedBlock(text string) string {
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start < 0 {
			continue
		}
		rest := text[start+len(fence):]
		end := strings.Index(rest, "```")
		if end < 0 {
			continue
		}
		return strings.TrimSpace(rest[:end])
	}
	return ""
}
