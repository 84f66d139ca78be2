package evidence

// Card is a static, named reference to a category of supporting data (a
// survey or telemetry source), never the data itself.
type Card struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Title  string `json:"title"`
	Blurb  string `json:"blurb"`
}

// The fixed registry of evidence cards. Never mutated after initialization,
// so it is safely shared across sessions.
var catalog = []Card{
	{
		ID:     "pulse-1",
		Source: "Pulse Survey",
		Title:  "Employee focus, confidence, and stress (monthly)",
		Blurb:  "Short monthly survey (N≈120) tracking focus time, confidence using AI on core tasks, and self-reported stress.",
	},
	{
		ID:     "wiki-barriers-1",
		Source: "Team Wiki",
		Title:  "Adoption barriers & complaints (curated)",
		Blurb:  "Internal log of friction points, risks, and blockers raised by teams; tagged by org, region, and severity.",
	},
	{
		ID:     "code-ci-1",
		Source: "Code Insights",
		Title:  "PR review latency, AI-assist mix, CI failures",
		Blurb:  "Repo hooks showing review time, AI vs human authorship ratio, and build/test failure rates by repo.",
	},
	{
		ID:     "meetings-1",
		Source: "Meetings & Handoffs",
		Title:  "Meeting load and handoff retries",
		Blurb:  "Calendar hours per person, document freshness, and re-open/retry rates along common workflow steps.",
	},
	{
		ID:     "policy-train-1",
		Source: "Policy & Training",
		Title:  "GenAI policy cadence & training completion",
		Blurb:  "Access policy versions and rollout dates; training completion by role/region with reminders and exceptions.",
	},
	{
		ID:     "cust-qa-1",
		Source: "Customer/QA",
		Title:  "Defects, escalations, and rework hours",
		Blurb:  "Post-release defect counts, escalation volume, and rework time, linked to release cadence and teams.",
	},
	{
		ID:     "web-benchmark-1",
		Source: "External Benchmark",
		Title:  "Peer adoption & quality benchmarks (industry)",
		Blurb:  "Recent industry report comparing active use and QA pass rates at comparable firms; notes on rollout patterns.",
	},
	{
		ID:     "research-1",
		Source: "Research Findings",
		Title:  "Academic synthesis: AI-in-the-loop impacts",
		Blurb:  "Peer-reviewed evidence on productivity lifts, error patterns, oversight effects, training needs, and spillovers.",
	},
}

// Catalog returns a copy of the built-in card registry.
func Catalog() []Card {
	out := make([]Card, len(catalog))
	copy(out, catalog)
	return out
}

// FindCard looks a card up by id within a snapshot.
func FindCard(cards []Card, id string) (Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
