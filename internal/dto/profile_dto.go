package dto

import "ai-adoption-analyst-be/pkg/persona"

type DeriveProfileRequest struct {
	ChartLiteracy    int    `json:"chart_literacy" validate:"omitempty,min=1,max=4"`
	CalcComfort      int    `json:"calc_comfort" validate:"omitempty,min=1,max=4"`
	LikertAnswers    []int  `json:"likert_answers" validate:"omitempty,max=3,dive,min=1,max=5"`
	ReasoningCorrect *bool  `json:"reasoning_correct"`
	AuthorityLevel   string `json:"authority_level" validate:"omitempty,oneof=ic manager director vp"`
	SpanBucket       string `json:"span_bucket"`
	SessionID        string `json:"session_id"` // re-onboarding overwrites the stored persona wholesale
}

type DeriveProfileResponse struct {
	SessionID string          `json:"session_id"`
	Persona   persona.Persona `json:"persona"`
}

type SessionProfileResponse struct {
	SessionID string          `json:"session_id"`
	Persona   persona.Persona `json:"persona"`
}
