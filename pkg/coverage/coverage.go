package coverage

import "regexp"

// Dimension tags for the three sensemaking lenses
const (
	TagCapability    = "capability"
	TagCollaboration = "collaboration"
	TagConditions    = "conditions"
)

// Flags records whether a conversation has touched each sensemaking dimension:
// individual-level (capability), workflow-level (collaboration), and
// environment-level (conditions) framing of the topic.
type Flags struct {
	Capability    bool `json:"capability"`
	Collaboration bool `json:"collaboration"`
	Conditions    bool `json:"conditions"`
}

// ValidTag reports whether tag names one of the three dimensions.
func ValidTag(tag string) bool {
	return tag == TagCapability || tag == TagCollaboration || tag == TagConditions
}

// Merge ORs any number of signals into prev. Flags only ever flip false to true;
// a weaker later signal never downgrades an accumulated flag.
func Merge(prev Flags, signals ...Flags) Flags {
	out := prev
	for _, s := range signals {
		out.Capability = out.Capability || s.Capability
		out.Collaboration = out.Collaboration || s.Collaboration
		out.Conditions = out.Conditions || s.Conditions
	}
	return out
}

// Passive lexical detector. Secondary signal so coverage still lights up when the
// model-classified signal is unavailable.
var (
	capPattern    = regexp.MustCompile(`(?i)\b(skill|learn|confidence|load|focus|quality|rework|fatigue|stress|time)\b`)
	collabPattern = regexp.MustCompile(`(?i)\b(hand-?off|coordination|review|cycle time|meeting|approval|doc|knowledge)\b`)
	condPattern   = regexp.MustCompile(`(?i)\b(policy|incentive|governance|training|access|equity|license)\b`)
)

// Tag classifies free text against the lexical patterns for each dimension.
func Tag(text string) Flags {
	return Flags{
		Capability:    capPattern.MatchString(text),
		Collaboration: collabPattern.MatchString(text),
		Conditions:    condPattern.MatchString(text),
	}
}
