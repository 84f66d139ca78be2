// Package coach produces structured feedback on a manager's raw question:
// per-dimension affirm/nudge bullets plus a single rewritten question that
// preserves the original's scope and intent.
package coach

import (
	"context"
	"fmt"
	"strings"

	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/pkg/coverage"
	"ai-adoption-analyst-be/pkg/llm"
	"ai-adoption-analyst-be/pkg/persona"
	"ai-adoption-analyst-be/pkg/response"
)

// Feedback is the coach result: 2-3 tagged bullets, one rewrite, and the set
// of dimension tags the bullets referenced.
type Feedback struct {
	Bullets []string `json:"feedback"`
	Rewrite string   `json:"rewrite"`
	Tags    []string `json:"cc_tags"`
}

const coachSystemPrompt = `You are a concise *question coach* helping a manager refine ONE question about AI adoption/usage.

Goal:
- Give short, supportive guidance that keeps the user's topic/scope intact, *affirms what they covered*, and *nudges them to add what's missing* using the three-dimension lens below.
- Return JSON only (see schema).

Keep these invariants:
- Preserve the user's **intent** (data-seeking vs recommendations) and **scope** ("my team", "our org", etc.).
- Keep any existing timeframe/metrics; never genericize the topic.
- Use plain language; no jargon or domain-heavy terms.

Sensemaking lens (for your reasoning; do not name the lens):
- Capability = individual skills, cognitive load, confidence, quality/errors/rework, focus time.
- Collaboration = handoffs, coordination, review latency, meeting load, cycle time, documentation/knowledge flow.
- Conditions = policy, access/permissions, training completion, incentives, governance, equity.

Coverage diagnosis:
- Infer which dimensions the original question already touches.
  - Mentions of people/roles/skills/quality/errors/time saved → Capability.
  - Handoffs/review/approvals/meetings/cycle time/docs → Collaboration.
  - Policy/access/training/incentives/governance/equity → Conditions.

Coaching style (3 moves):
1) **Affirm** (what's covered): "You've got Capability covered..." Keep it brief and specific (≤18 words).
2) **Nudge** (what's missing): "Now consider Collaboration..." Add a concrete diagnostic angle + why it helps (≤18 words).
3) **Make-measurable**: Suggest exactly one metric/segmentation that operationalizes the nudge (≤18 words).
   - Prefer: adoption % (≥1 session in window), active-use % (≥3 sessions/week), review latency, error rate, rework hours, training completion %, policy exception rate.
   - Optional segment: by role, task, team.

Rewrite rule:
- One sentence (7-22 words) that **preserves topic/scope/intent** and **adds ONE missing dimension** in a measured way.
- If timeframe missing, add a sensible default ("last 30 days").
- Keep it a question, plain language, no lists, no advice.

Tone:
- Supportive and coach-like ("You've covered... Now consider..."). You may say "or note this for next time" once.

JSON ONLY schema:
{
  "feedback": [
    "[Capability] You've covered ...",
    "[Collaboration] Now consider ... (why)...",
    "[Conditions] Make it measurable: ..."
  ],
  "rewrite": "one-sentence question preserving scope/intent/topic with ONE added measurable dimension",
  "cc_tags": ["capability"|"collaboration"|"conditions"]
}`

// Coach asks the model for structured question feedback, recovering to a
// fixed two-bullet result on any failure.
type Coach struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewCoach(provider llm.LLMProvider, log logger.ILogger) *Coach {
	return &Coach{
		provider: provider,
		logger:   log,
	}
}

// Coach produces feedback for the original question. Never returns an error.
func (c *Coach) Coach(ctx context.Context, originalQuestion string, p persona.Persona, transcript string) Feedback {
	userTurn := fmt.Sprintf("%s\nOriginal question: \"\"\"%s\"\"\"\nReturn JSON as specified.",
		personaText(p), strings.TrimSpace(originalQuestion))

	raw, err := c.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: coachSystemPrompt},
		{Role: llm.RoleUser, Content: userTurn},
	}, llm.WithTemperature(0))
	if err != nil {
		c.logger.Warn("question-coach", "model call failed, using fallback", map[string]interface{}{"error": err.Error()})
		return Fallback()
	}

	var out Feedback
	if err := response.DecodeObject(raw, &out); err != nil {
		c.logger.Warn("question-coach", "unparseable coach output, using fallback", map[string]interface{}{"error": err.Error()})
		return Fallback()
	}

	out.Bullets = response.Truncate(out.Bullets, response.MaxCoachBullets)
	out.Tags = validTags(out.Tags)

	if len(out.Bullets) == 0 && out.Rewrite == "" {
		return Fallback()
	}
	return out
}

// Fallback is the fixed two-bullet result used on total failure.
func Fallback() Feedback {
	return Feedback{
		Bullets: []string{
			"[Capability] Keep the team focus and ask for measurable usage by task/role.",
			"[Collaboration] Consider handoffs or review points that changed post-AI.",
		},
		Rewrite: "Within my team, which tasks use AI weekly by role, and how has review time changed?",
		Tags:    []string{coverage.TagCapability, coverage.TagCollaboration},
	}
}

func personaText(p persona.Persona) string {
	return fmt.Sprintf("Persona: level=%s, span=%s, numeracy=%d.",
		persona.LevelLabel(p.AuthorityLevel), p.SpanCategory, p.NumeracyScore)
}

func validTags(tags []string) []string {
	seen := make(map[string]bool, 3)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if coverage.ValidTag(t) && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
