package persona

import (
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func TestDeriveSliderPath(t *testing.T) {
	tests := []struct {
		name         string
		chart        int
		calc         int
		wantRaw      float64
		wantNumeracy int
	}{
		{name: "both low", chart: 1, calc: 1, wantRaw: 1.0, wantNumeracy: 1},
		{name: "just under band two", chart: 2, calc: 3, wantRaw: 2.5, wantNumeracy: 1},
		{name: "band two", chart: 3, calc: 3, wantRaw: 3.0, wantNumeracy: 2},
		{name: "band three", chart: 3, calc: 4, wantRaw: 3.5, wantNumeracy: 3},
		{name: "slider path tops at band three", chart: 4, calc: 4, wantRaw: 4.0, wantNumeracy: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Derive(OnboardingAnswers{ChartLiteracy: tt.chart, CalcComfort: tt.calc})

			if p.RawNumeracy != tt.wantRaw {
				t.Errorf("RawNumeracy = %v, want %v", p.RawNumeracy, tt.wantRaw)
			}
			if p.NumeracyScore != tt.wantNumeracy {
				t.Errorf("NumeracyScore = %d, want %d", p.NumeracyScore, tt.wantNumeracy)
			}
		})
	}
}

func TestDeriveLikertPath(t *testing.T) {
	tests := []struct {
		name         string
		answers      []int
		reasoning    *bool
		wantRaw      float64
		wantNumeracy int
	}{
		{name: "all ones", answers: []int{1, 1, 1}, wantRaw: 1.0, wantNumeracy: 1},
		{name: "mid battery", answers: []int{3, 3, 3}, wantRaw: 3.0, wantNumeracy: 2},
		{name: "reasoning bonus crosses band", answers: []int{3, 3, 4}, reasoning: boolPtr(true), wantRaw: 3.6, wantNumeracy: 3},
		{name: "reasoning penalty drops band", answers: []int{3, 3, 2}, reasoning: boolPtr(false), wantRaw: 2.4, wantNumeracy: 1},
		{name: "top band", answers: []int{5, 5, 4}, reasoning: boolPtr(true), wantRaw: 4.9, wantNumeracy: 4},
		{name: "likert wins over sliders", answers: []int{5, 5, 5}, wantRaw: 5.0, wantNumeracy: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Derive(OnboardingAnswers{
				ChartLiteracy:    1,
				CalcComfort:      1,
				LikertAnswers:    tt.answers,
				ReasoningCorrect: tt.reasoning,
			})

			if p.RawNumeracy != tt.wantRaw {
				t.Errorf("RawNumeracy = %v, want %v", p.RawNumeracy, tt.wantRaw)
			}
			if p.NumeracyScore != tt.wantNumeracy {
				t.Errorf("NumeracyScore = %d, want %d", p.NumeracyScore, tt.wantNumeracy)
			}
		})
	}
}

func TestDeriveDefaults(t *testing.T) {
	p := Derive(OnboardingAnswers{})

	if p.NumeracyScore != 2 {
		t.Errorf("NumeracyScore = %d, want default 2", p.NumeracyScore)
	}
	if p.SpanCategory != SpanTeam {
		t.Errorf("SpanCategory = %q, want default %q", p.SpanCategory, SpanTeam)
	}
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{raw: 2.5, want: 1},
		{raw: 2.6, want: 2},
		{raw: 3.3, want: 2},
		{raw: 3.4, want: 3},
		{raw: 4.1, want: 3},
		{raw: 4.2, want: 4},
		{raw: 5.0, want: 4},
	}

	for _, tt := range tests {
		if got := Band(tt.raw); got != tt.want {
			t.Errorf("Band(%v) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestBandMonotonic(t *testing.T) {
	prev := Band(1.0)
	for raw := 1.0; raw <= 5.0; raw += 0.1 {
		got := Band(raw)
		if got < prev {
			t.Fatalf("Band(%v) = %d decreased from %d", raw, got, prev)
		}
		prev = got
	}
}

func TestSpanForLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{level: LevelIC, want: SpanIndividual},
		{level: LevelManager, want: SpanTeam},
		{level: LevelDirector, want: SpanOrg},
		{level: LevelVP, want: SpanPolicy},
		{level: "", want: SpanTeam},
		{level: "intern", want: SpanTeam},
	}

	for _, tt := range tests {
		if got := SpanForLevel(tt.level); got != tt.want {
			t.Errorf("SpanForLevel(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Persona
		wantNum  int
		wantSpan string
	}{
		{name: "zero numeracy defaults", in: Persona{SpanCategory: SpanOrg}, wantNum: 2, wantSpan: SpanOrg},
		{name: "clamps high", in: Persona{NumeracyScore: 9, SpanCategory: SpanTeam}, wantNum: 4, wantSpan: SpanTeam},
		{name: "clamps low", in: Persona{NumeracyScore: -1, SpanCategory: SpanTeam}, wantNum: 1, wantSpan: SpanTeam},
		{name: "invalid span falls back to level", in: Persona{NumeracyScore: 3, SpanCategory: "galaxy", AuthorityLevel: LevelVP}, wantNum: 3, wantSpan: SpanPolicy},
		{name: "invalid span no level", in: Persona{NumeracyScore: 3, SpanCategory: ""}, wantNum: 3, wantSpan: SpanTeam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)

			if got.NumeracyScore != tt.wantNum {
				t.Errorf("NumeracyScore = %d, want %d", got.NumeracyScore, tt.wantNum)
			}
			if got.SpanCategory != tt.wantSpan {
				t.Errorf("SpanCategory = %q, want %q", got.SpanCategory, tt.wantSpan)
			}
		})
	}
}
