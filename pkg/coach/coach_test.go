package coach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/pkg/llm"
	"ai-adoption-analyst-be/pkg/persona"
)

type stubProvider struct {
	reply    string
	err      error
	lastUser string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	for _, m := range history {
		if m.Role == llm.RoleUser {
			s.lastUser = m.Content
		}
	}
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func managerPersona() persona.Persona {
	return persona.Persona{NumeracyScore: 2, SpanCategory: persona.SpanTeam, AuthorityLevel: persona.LevelManager}
}

func TestCoachHappyPath(t *testing.T) {
	provider := &stubProvider{
		reply: `{"feedback":["[Capability] You've covered team usage.","[Collaboration] Now consider review handoffs."],"rewrite":"For my team over the last 30 days, how much is AI helping, and has review latency changed?","cc_tags":["capability","collaboration"]}`,
	}
	c := NewCoach(provider, logger.NewNopLogger())

	fb := c.Coach(context.Background(), "How much is AI helping my team?", managerPersona(), "")

	if len(fb.Bullets) != 2 {
		t.Fatalf("len(Bullets) = %d, want 2", len(fb.Bullets))
	}
	if !strings.Contains(fb.Rewrite, "my team") {
		t.Errorf("Rewrite = %q, scope dropped", fb.Rewrite)
	}
	if len(fb.Tags) != 2 || fb.Tags[0] != "capability" || fb.Tags[1] != "collaboration" {
		t.Errorf("Tags = %v", fb.Tags)
	}
	if !strings.Contains(provider.lastUser, `"""How much is AI helping my team?"""`) {
		t.Errorf("user turn missing quoted question: %q", provider.lastUser)
	}
	if !strings.Contains(provider.lastUser, "level=Manager, span=team, numeracy=2") {
		t.Errorf("user turn missing persona line: %q", provider.lastUser)
	}
}

func TestCoachFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	c := NewCoach(provider, logger.NewNopLogger())

	fb := c.Coach(context.Background(), "q", managerPersona(), "")

	want := Fallback()
	if len(fb.Bullets) != 2 || fb.Bullets[0] != want.Bullets[0] || fb.Bullets[1] != want.Bullets[1] {
		t.Errorf("Bullets = %v, want fixed fallback", fb.Bullets)
	}
	if fb.Rewrite != want.Rewrite {
		t.Errorf("Rewrite = %q, want %q", fb.Rewrite, want.Rewrite)
	}
}

func TestCoachFallsBackOnGarbage(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "prose", reply: "Great question! Keep it up."},
		{name: "empty object", reply: `{}`},
		{name: "empty fields", reply: `{"feedback":[],"rewrite":"","cc_tags":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{reply: tt.reply}
			c := NewCoach(provider, logger.NewNopLogger())

			fb := c.Coach(context.Background(), "q", managerPersona(), "")

			if fb.Rewrite != Fallback().Rewrite {
				t.Errorf("Rewrite = %q, want fallback rewrite", fb.Rewrite)
			}
		})
	}
}

func TestCoachTruncatesBullets(t *testing.T) {
	provider := &stubProvider{
		reply: `{"feedback":["b1","b2","b3","b4","b5"],"rewrite":"r?","cc_tags":["capability"]}`,
	}
	c := NewCoach(provider, logger.NewNopLogger())

	fb := c.Coach(context.Background(), "q", managerPersona(), "")

	if len(fb.Bullets) != 3 {
		t.Errorf("len(Bullets) = %d, want 3", len(fb.Bullets))
	}
}

func TestCoachFiltersTags(t *testing.T) {
	provider := &stubProvider{
		reply: `{"feedback":["b"],"rewrite":"r?","cc_tags":["Capability","capability","CONDITIONS","culture",""]}`,
	}
	c := NewCoach(provider, logger.NewNopLogger())

	fb := c.Coach(context.Background(), "q", managerPersona(), "")

	if len(fb.Tags) != 2 || fb.Tags[0] != "capability" || fb.Tags[1] != "conditions" {
		t.Errorf("Tags = %v, want [capability conditions]", fb.Tags)
	}
}

func TestCoachKeepsRewriteOnlyResult(t *testing.T) {
	provider := &stubProvider{
		reply: `{"feedback":[],"rewrite":"Which team tasks use AI weekly?","cc_tags":[]}`,
	}
	c := NewCoach(provider, logger.NewNopLogger())

	fb := c.Coach(context.Background(), "q", managerPersona(), "")

	if fb.Rewrite != "Which team tasks use AI weekly?" {
		t.Errorf("Rewrite = %q, rewrite-only result should survive", fb.Rewrite)
	}
	if len(fb.Bullets) != 0 {
		t.Errorf("Bullets = %v, want empty", fb.Bullets)
	}
}
