// Package facts synthesizes short, plausible, internally consistent
// pseudo-metrics from selected evidence cards, normalized to one reporting
// window. The statements are model-generated and explicitly not drawn from a
// real data source.
package facts

import (
	"context"
	"encoding/json"

	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/pkg/evidence"
	"ai-adoption-analyst-be/pkg/llm"
	"ai-adoption-analyst-be/pkg/persona"
	"ai-adoption-analyst-be/pkg/response"
)

// Fact is one compact metric clause tied to the card it was derived from.
type Fact struct {
	SourceCardID string `json:"source_id"`
	Line         string `json:"line"`
}

// Batch holds 0-4 facts sharing a single reporting window label.
type Batch struct {
	Window string `json:"window"`
	Facts  []Fact `json:"facts"`
}

// DefaultWindow is the shared reporting window when none is stated.
const DefaultWindow = "last 30 days"

const synthesizerSystemPrompt = `SYSTEM — Source Facts Synthesizer

You output concise, plausible, internally consistent micro-facts derived from provided source cards
to support the user's next analyst query. Treat these as already-computed analytics. Do not say
they are estimates or placeholders. Normalize to ONE time window (default last 30 days).

Guidelines
- 1-2 facts per selected card; 2-4 facts total.
- Each fact is one compact clause with: metric + value + unit + window + (optional) delta vs baseline + cohort.
- Keep numbers realistic (e.g., adoption 10-70%, PR latency deltas 5-40%, stress +/- 2-15pp).
- Use short, manager-friendly wording. No long quotes; no tables.

Output JSON only:
{
  "window": "last 30 days" | "last 7 days" | "last quarter",
  "facts": [
    { "source_id": "code-ci-1", "line": "PR review latency −18% vs prior 30d (team repos, n=642 PRs)." },
    { "source_id": "pulse-1",    "line": "Focus time +12% and stress −5pp (N=118 ICs)." }
  ]
}`

// Fixed id -> fact line lookup used on every fallback path.
var fallbackLines = map[string]string{
	"code-ci-1":       "PR review latency −18% vs prior 30d (team repos, n=640+ PRs).",
	"pulse-1":         "Focus time +12% and stress −5pp (N≈120 ICs).",
	"wiki-barriers-1": "Top barriers: access friction (23%), policy uncertainty (14%).",
	"meetings-1":      "Meeting load −1.2h/pp; handoff retries +3pp (last 30d).",
	"policy-train-1":  "GenAI training completion 76% (IC 81%, Mgr 68%); policy v2.3 rolled out 6w ago.",
	"cust-qa-1":       "Defects −11% vs prior 30d; escalations −6%; rework hours −8%.",
	"web-benchmark-1": "Peers show 34–52% active use; QA pass +5–12pp post-AI.",
}

const fallbackGenericLine = "Context metric available."

// Synthesizer produces a fact batch for the selected cards, falling back to
// the fixed lookup table on any failure.
type Synthesizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		logger:   log,
	}
}

type synthesizerRequest struct {
	Focus      string         `json:"focus"`
	Profile    profilePayload `json:"profile"`
	Transcript string         `json:"transcript"`
	Cards      []cardPayload  `json:"cards"`
}

type profilePayload struct {
	Numeracy int    `json:"numeracy"`
	Span     string `json:"span"`
}

type cardPayload struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Title  string `json:"title"`
	Blurb  string `json:"blurb"`
}

// Pointer fields so entries missing either key are detectably absent, not
// zero-valued, and can be dropped per the contract.
type factWire struct {
	SourceID *string `json:"source_id"`
	Line     *string `json:"line"`
}

type batchWire struct {
	Window *string    `json:"window"`
	Facts  []factWire `json:"facts"`
}

const maxTranscriptBytes = 3000

// Synthesize asks the model for 2-4 facts over the selected cards. When no
// selected id resolves against the catalog no external call is made and the
// empty fallback batch is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, focus, transcript string, p persona.Persona, selectedIDs []string, catalog []evidence.Card) Batch {
	cards := make([]cardPayload, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if c, ok := evidence.FindCard(catalog, id); ok {
			cards = append(cards, cardPayload{ID: c.ID, Source: c.Source, Title: c.Title, Blurb: c.Blurb})
		}
	}
	if len(cards) == 0 {
		return Fallback(nil)
	}

	payload, err := json.Marshal(synthesizerRequest{
		Focus:      focus,
		Profile:    profilePayload{Numeracy: p.NumeracyScore, Span: p.SpanCategory},
		Transcript: tailBytes(transcript, maxTranscriptBytes),
		Cards:      cards,
	})
	if err != nil {
		return Fallback(selectedIDs)
	}

	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: synthesizerSystemPrompt},
		{Role: llm.RoleUser, Content: string(payload)},
	}, llm.WithTemperature(0.2))
	if err != nil {
		s.logger.Warn("fact-synthesizer", "model call failed, using fallback", map[string]interface{}{"error": err.Error()})
		return Fallback(selectedIDs)
	}

	var wire batchWire
	if err := response.DecodeObject(raw, &wire); err != nil {
		s.logger.Warn("fact-synthesizer", "unparseable fact batch, using fallback", map[string]interface{}{"error": err.Error()})
		return Fallback(selectedIDs)
	}

	facts := make([]Fact, 0, len(wire.Facts))
	for _, f := range wire.Facts {
		if f.SourceID == nil || f.Line == nil {
			continue
		}
		facts = append(facts, Fact{SourceCardID: *f.SourceID, Line: *f.Line})
		if len(facts) == response.MaxFacts {
			break
		}
	}
	if len(facts) == 0 {
		return Fallback(selectedIDs)
	}

	window := DefaultWindow
	if wire.Window != nil && *wire.Window != "" {
		window = *wire.Window
	}

	return Batch{Window: window, Facts: facts}
}

// Fallback maps up to 3 requested ids through the fixed lookup table. The
// output is byte-identical across invocations for the same ids.
func Fallback(requestedIDs []string) Batch {
	n := len(requestedIDs)
	if n > 3 {
		n = 3
	}
	facts := make([]Fact, 0, n)
	for _, id := range requestedIDs[:n] {
		line, ok := fallbackLines[id]
		if !ok {
			line = fallbackGenericLine
		}
		facts = append(facts, Fact{SourceCardID: id, Line: line})
	}
	return Batch{Window: DefaultWindow, Facts: facts}
}

// Lines flattens a batch into the fact strings woven into the main prompt.
func Lines(b Batch) []string {
	lines := make([]string, 0, len(b.Facts))
	for _, f := range b.Facts {
		lines = append(lines, f.Line)
	}
	return lines
}

func tailBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
