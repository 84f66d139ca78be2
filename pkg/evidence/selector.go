package evidence

import (
	"context"
	"encoding/json"

	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/pkg/coverage"
	"ai-adoption-analyst-be/pkg/llm"
	"ai-adoption-analyst-be/pkg/persona"
	"ai-adoption-analyst-be/pkg/response"
)

// Selection is the per-turn evidence pick: up to 3 card ids with rationales
// aligned by index, plus the turn's coverage classification.
type Selection struct {
	Query      string         `json:"query"`
	IDs        []string       `json:"ids"`
	Rationales []string       `json:"rationales"`
	Coverage   coverage.Flags `json:"coverage"`
}

const selectorSystemPrompt = `SYSTEM — Source Reranker + Coverage Tagger

Pick up to 3 cards that best help the analyst answer the user's NEXT query and explain likely mechanisms across:
- Capability (individual: skill, cognitive load, time-on-task, quality, confidence)
- Collaboration (workflow: handoffs, reviews/QA, cycle time, coordination, knowledge sharing)
- Conditions (environment: policy, incentives, access, governance, training, equity)

Return JSON only:
{
  "ids": ["id1","id2"],
  "rationales": ["<=12 words each","..."],
  "coverage": {"capability": true|false, "collaboration": true|false, "conditions": true|false}
}
"ids" holds at most 3 entries from the candidates; each rationale says why that card helps.
The coverage object is a multi-label classification for THIS turn.

Rules
- Consider the user's focus + recent transcript + profile.
- Prefer diversity: do not pick three cards that all say the same thing.
- Choose cards whose plausible facts would directly reduce uncertainty or connect causes to outcomes.
- Do not mention or output the dimension labels beyond the JSON booleans above.
- Output JSON ONLY. No prose. No code fences.`

// maxTranscriptBytes bounds the transcript slice supplied to the model.
const maxTranscriptBytes = 3000

// Selector delegates ranking and coverage classification to the model, with a
// deterministic first-3 fallback on any failure.
type Selector struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSelector(provider llm.LLMProvider, log logger.ILogger) *Selector {
	return &Selector{
		provider: provider,
		logger:   log,
	}
}

// selectorWire mirrors the instructed JSON contract.
type selectorWire struct {
	IDs        []string        `json:"ids"`
	Rationales []string        `json:"rationales"`
	Coverage   *coverage.Flags `json:"coverage"`
}

type selectorRequest struct {
	Focus      string          `json:"focus"`
	Profile    profilePayload  `json:"profile"`
	Transcript string          `json:"transcript"`
	Candidates []candidateCard `json:"candidates"`
}

type profilePayload struct {
	Numeracy int    `json:"numeracy"`
	Span     string `json:"span"`
}

type candidateCard struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Title  string `json:"title"`
	Blurb  string `json:"blurb"`
}

// Select picks up to 3 relevant cards for the query. Never returns an error:
// any external failure or malformed output resolves to Fallback(catalog).
func (s *Selector) Select(ctx context.Context, query, transcript string, p persona.Persona, catalog []Card) Selection {
	candidates := make([]candidateCard, 0, len(catalog))
	for _, c := range catalog {
		candidates = append(candidates, candidateCard{ID: c.ID, Source: c.Source, Title: c.Title, Blurb: c.Blurb})
	}

	payload, err := json.Marshal(selectorRequest{
		Focus:      query,
		Profile:    profilePayload{Numeracy: p.NumeracyScore, Span: p.SpanCategory},
		Transcript: tailBytes(transcript, maxTranscriptBytes),
		Candidates: candidates,
	})
	if err != nil {
		return fallbackWithQuery(query, catalog)
	}

	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: selectorSystemPrompt},
		{Role: llm.RoleUser, Content: string(payload)},
	}, llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Warn("evidence-selector", "model call failed, using fallback", map[string]interface{}{"error": err.Error()})
		return fallbackWithQuery(query, catalog)
	}

	var wire selectorWire
	if err := response.DecodeObject(raw, &wire); err != nil {
		s.logger.Warn("evidence-selector", "unparseable selection, using fallback", map[string]interface{}{"error": err.Error()})
		return fallbackWithQuery(query, catalog)
	}
	if len(wire.IDs) == 0 {
		return fallbackWithQuery(query, catalog)
	}

	ids, rationales := response.AlignPair(dedupe(wire.IDs), wire.Rationales, response.MaxEvidenceIDs)

	flags := coverage.Flags{}
	if wire.Coverage != nil {
		flags = *wire.Coverage
	}

	return Selection{
		Query:      query,
		IDs:        ids,
		Rationales: rationales,
		Coverage:   flags,
	}
}

// Fallback is the deterministic selection used whenever the model cannot be
// trusted: first 3 catalog entries in registry order, generic rationales, and
// a conservative coverage default that never claims conditions-coverage.
func Fallback(catalog []Card) Selection {
	n := len(catalog)
	if n > response.MaxEvidenceIDs {
		n = response.MaxEvidenceIDs
	}
	ids := make([]string, 0, n)
	rationales := make([]string, 0, n)
	for _, c := range catalog[:n] {
		ids = append(ids, c.ID)
		rationales = append(rationales, "generic coverage")
	}
	return Selection{
		IDs:        ids,
		Rationales: rationales,
		Coverage:   coverage.Flags{Capability: true, Collaboration: true, Conditions: false},
	}
}

func fallbackWithQuery(query string, catalog []Card) Selection {
	sel := Fallback(catalog)
	sel.Query = query
	return sel
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func tailBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
