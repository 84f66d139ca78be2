package persona

// Span categories describe the scope a persona makes decisions over
const (
	SpanIndividual = "individual"
	SpanTeam       = "team"
	SpanOrg        = "org"
	SpanPolicy     = "policy"
)

// Authority levels reported during onboarding
const (
	LevelIC       = "ic"
	LevelManager  = "manager"
	LevelDirector = "director"
	LevelVP       = "vp"
)

// Persona is the derived numeracy/authority profile driving personalization.
// Created once at onboarding and immutable for the session.
type Persona struct {
	NumeracyScore  int     `json:"numeracy"`                  // band 1-4
	RawNumeracy    float64 `json:"raw_numeracy,omitempty"`    // 1-decimal average before banding
	SpanCategory   string  `json:"span_category"`             // individual | team | org | policy
	AuthorityLevel string  `json:"authority_level,omitempty"` // ic | manager | director | vp
	SpanBucket     string  `json:"span_bucket,omitempty"`     // raw headcount bucket from onboarding
}

var spanByLevel = map[string]string{
	LevelIC:       SpanIndividual,
	LevelManager:  SpanTeam,
	LevelDirector: SpanOrg,
	LevelVP:       SpanPolicy,
}

var labelByLevel = map[string]string{
	LevelIC:       "IC",
	LevelManager:  "Manager",
	LevelDirector: "Director/Head",
	LevelVP:       "VP/C-suite",
}

// SpanForLevel maps an authority level to its span category.
// Unknown or missing levels default to team scope.
func SpanForLevel(level string) string {
	if span, ok := spanByLevel[level]; ok {
		return span
	}
	return SpanTeam
}

// LevelLabel returns the display label for an authority level.
func LevelLabel(level string) string {
	if label, ok := labelByLevel[level]; ok {
		return label
	}
	return "Manager"
}

// ValidSpan reports whether span is one of the four categories.
func ValidSpan(span string) bool {
	switch span {
	case SpanIndividual, SpanTeam, SpanOrg, SpanPolicy:
		return true
	}
	return false
}

// Normalize fills defaults so downstream consumers never see an out-of-range
// persona: numeracy clamps to [1,4] (0 means unset and defaults to 2), span
// falls back to the authority mapping.
func Normalize(p Persona) Persona {
	if p.NumeracyScore == 0 {
		p.NumeracyScore = 2
	}
	if p.NumeracyScore < 1 {
		p.NumeracyScore = 1
	}
	if p.NumeracyScore > 4 {
		p.NumeracyScore = 4
	}
	if !ValidSpan(p.SpanCategory) {
		p.SpanCategory = SpanForLevel(p.AuthorityLevel)
	}
	return p
}
