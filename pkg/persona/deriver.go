package persona

import "math"

// OnboardingAnswers carries either the two-slider quick setup or the
// three-item Likert battery with a numeric-reasoning check. Zero values mean
// the question was skipped.
type OnboardingAnswers struct {
	ChartLiteracy int `json:"chart_literacy"` // 1-4 slider
	CalcComfort   int `json:"calc_comfort"`   // 1-4 slider

	LikertAnswers    []int `json:"likert_answers"`    // three 1-5 items
	ReasoningCorrect *bool `json:"reasoning_correct"` // numeric-reasoning check, nil if not asked

	AuthorityLevel string `json:"authority_level"` // ic | manager | director | vp
	SpanBucket     string `json:"span_bucket"`     // e.g. "2_5", "51_plus"
}

// Numeracy band thresholds over the raw average. Boundary values belong to the
// higher band.
const (
	bandFourMin  = 4.2
	bandThreeMin = 3.4
	bandTwoMin   = 2.6
)

// Derive turns onboarding answers into a normalized persona. All inputs are
// defaulted when missing: numeracy band 2, span category team.
func Derive(answers OnboardingAnswers) Persona {
	p := Persona{
		AuthorityLevel: answers.AuthorityLevel,
		SpanCategory:   SpanForLevel(answers.AuthorityLevel),
		SpanBucket:     answers.SpanBucket,
	}

	switch {
	case len(answers.LikertAnswers) > 0:
		raw := likertAverage(answers.LikertAnswers, answers.ReasoningCorrect)
		p.RawNumeracy = roundOneDecimal(raw)
		p.NumeracyScore = Band(p.RawNumeracy)
	case answers.ChartLiteracy > 0 && answers.CalcComfort > 0:
		p.RawNumeracy = roundOneDecimal(float64(answers.ChartLiteracy+answers.CalcComfort) / 2)
		p.NumeracyScore = Band(p.RawNumeracy)
	default:
		p.NumeracyScore = 2
	}

	return p
}

// Band buckets a raw numeracy average into the four bands.
func Band(raw float64) int {
	switch {
	case raw >= bandFourMin:
		return 4
	case raw >= bandThreeMin:
		return 3
	case raw >= bandTwoMin:
		return 2
	default:
		return 1
	}
}

func likertAverage(answers []int, reasoningCorrect *bool) float64 {
	sum := 0
	for _, a := range answers {
		sum += a
	}
	avg := float64(sum) / float64(len(answers))
	if reasoningCorrect != nil {
		if *reasoningCorrect {
			avg += 0.25
		} else {
			avg -= 0.25
		}
	}
	return avg
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
