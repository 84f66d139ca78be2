package dto

import (
	"encoding/json"

	"ai-adoption-analyst-be/pkg/coverage"
	"ai-adoption-analyst-be/pkg/evidence"
	"ai-adoption-analyst-be/pkg/facts"
)

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// PersonaDTO is the persona slice clients attach to pipeline requests.
// Zero values mean unset and are defaulted server-side.
type PersonaDTO struct {
	Numeracy       int    `json:"numeracy" validate:"omitempty,min=1,max=4"`
	SpanCategory   string `json:"span_category" validate:"omitempty,oneof=individual team org policy"`
	AuthorityLevel string `json:"authority_level" validate:"omitempty,oneof=ic manager director vp"`
}

// FactLineDTO tolerates the collaborator-shaped variants clients may relay:
// a bare string, {"line": ...}, {"summary": ...}, or {"source_id","value"}.
type FactLineDTO struct {
	Line string
}

func (f *FactLineDTO) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Line = s
		return nil
	}
	var obj struct {
		Line     string `json:"line"`
		Summary  string `json:"summary"`
		SourceID string `json:"source_id"`
		Value    string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unrecognized shape: keep the raw text rather than failing the request
		f.Line = string(data)
		return nil
	}
	switch {
	case obj.Line != "":
		f.Line = obj.Line
	case obj.Summary != "":
		f.Line = obj.Summary
	case obj.SourceID != "" && obj.Value != "":
		f.Line = obj.SourceID + ": " + obj.Value
	default:
		f.Line = string(data)
	}
	return nil
}

type ChatRequest struct {
	Mode            string          `json:"mode" validate:"omitempty,oneof=control proto"`
	Messages        []ChatMessageDTO `json:"messages" validate:"dive"`
	Numeracy        int             `json:"numeracy" validate:"omitempty,min=1,max=4"`
	SpanCategory    string          `json:"span_category" validate:"omitempty,oneof=individual team org policy"`
	AttachedIDs     []string        `json:"attached_ids"`
	CatalogSnapshot []evidence.Card `json:"catalog_snapshot"`
	Coverage        *coverage.Flags `json:"coverage"`
	Facts           []FactLineDTO   `json:"facts"`
	WindowLabel     string          `json:"window_label"`
	SessionID       string          `json:"session_id"`
	TurnID          string          `json:"turn_id"`
}

type ChatResponse struct {
	Text   string `json:"text"`
	TurnID string `json:"turn_id,omitempty"`
}

type EvidenceSelectionRequest struct {
	Focus           string          `json:"focus" validate:"required"`
	Transcript      string          `json:"transcript"`
	Persona         PersonaDTO      `json:"persona"`
	CatalogSnapshot []evidence.Card `json:"catalog_snapshot"`
	SessionID       string          `json:"session_id"`
	TurnID          string          `json:"turn_id"`
}

type EvidenceSelectionResponse struct {
	IDs             []string        `json:"ids"`
	Rationales      []string        `json:"rationales"`
	Coverage        coverage.Flags  `json:"coverage"`
	SessionCoverage *coverage.Flags `json:"session_coverage,omitempty"`
	TurnID          string          `json:"turn_id,omitempty"`
}

type FactSynthesisRequest struct {
	Focus           string          `json:"focus" validate:"required"`
	Transcript      string          `json:"transcript"`
	Persona         PersonaDTO      `json:"persona"`
	SelectedIDs     []string        `json:"selected_ids"`
	CatalogSnapshot []evidence.Card `json:"catalog_snapshot"`
	TurnID          string          `json:"turn_id"`
}

type FactSynthesisResponse struct {
	Window string       `json:"window"`
	Facts  []facts.Fact `json:"facts"`
	TurnID string       `json:"turn_id,omitempty"`
}

type CoachRequest struct {
	OriginalQuestion string     `json:"original_question" validate:"required"`
	Persona          PersonaDTO `json:"persona"`
	Transcript       string     `json:"transcript"`
	TurnID           string     `json:"turn_id"`
}

type CoachResponse struct {
	Feedback []string `json:"feedback"`
	Rewrite  string   `json:"rewrite"`
	CCTags   []string `json:"cc_tags"`
	TurnID   string   `json:"turn_id,omitempty"`
}

type CatalogResponse struct {
	Cards []evidence.Card `json:"cards"`
}
