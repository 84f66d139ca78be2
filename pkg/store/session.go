package store

import (
	"ai-adoption-analyst-be/pkg/coverage"
	"ai-adoption-analyst-be/pkg/persona"
)

// Session is the server-side session record: the persona derived at
// onboarding plus the monotonically accumulated coverage flags. Conversation
// content is never stored here.
type Session struct {
	ID       string           `json:"id"`
	Persona  *persona.Persona `json:"persona,omitempty"`
	Coverage coverage.Flags   `json:"coverage"`

	// Metadata for last interaction
	LastQuery string `json:"last_query"`
}
