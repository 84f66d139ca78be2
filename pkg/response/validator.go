// Package response validates raw collaborator output against the expected
// shape. The model may ignore its instructed contract (prose preambles, code
// fences, truncated JSON), so every consumer treats its output as untrusted
// and recovers to a deterministic value here.
package response

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackAnswer is the fixed analyst-style sentence substituted when the
// main answer call fails or returns nothing.
const FallbackAnswer = "Quick take: active usage is climbing in drafting/review; review latency is down; training completion and policy exceptions are the main levers this month."

// Truncation caps enforced regardless of collaborator output size
const (
	MaxEvidenceIDs  = 3
	MaxRationales   = 3
	MaxFacts        = 4
	MaxCoachBullets = 3
)

// Text validates a free-text answer. Empty output becomes the fixed fallback
// sentence; anything else passes through trimmed.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return FallbackAnswer
	}
	return trimmed
}

// ExtractJSON pulls the last top-level brace-delimited substring out of raw,
// trimming markdown code fences first. Returns "" if no object is present.
func ExtractJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	startIdx := strings.Index(cleaned, "{")
	endIdx := strings.LastIndex(cleaned, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return cleaned[startIdx : endIdx+1]
}

// DecodeObject attempts a direct parse of raw into v, then retries against the
// extracted brace window. Callers substitute their shape-specific fallback on
// error.
func DecodeObject(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	extracted := ExtractJSON(raw)
	if extracted == "" {
		return fmt.Errorf("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(extracted), v); err != nil {
		return fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return nil
}

// Truncate caps a string sequence, mapping nil to an empty slice.
func Truncate(items []string, max int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}

// AlignPair truncates ids to maxIDs and forces aligned to exactly the same
// length as ids, truncating or padding with empty strings.
func AlignPair(ids, aligned []string, maxIDs int) ([]string, []string) {
	ids = Truncate(ids, maxIDs)
	aligned = Truncate(aligned, len(ids))
	for len(aligned) < len(ids) {
		aligned = append(aligned, "")
	}
	return ids, aligned
}
