package risk

import "time"

// Tier grades how urgent a message is from a safety standpoint.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Action types resolved from a risk scan. Each maps to an optional
// automation webhook.
const (
	ActionCrisisIntervention = "crisis_intervention"
	ActionAnxietySupport     = "anxiety_support"
	ActionDepressionCare     = "depression_care"
	ActionStressIntervention = "stress_intervention"
	ActionWellnessCheck      = "wellness_check"
)

// Assessment is the result of an independent keyword scan of raw text.
// It is computed before response generation and is never derived from
// the emotion classifier's output.
type Assessment struct {
	Tier       Tier      `json:"tier"`
	Indicators []string  `json:"indicators"`
	ActionType string    `json:"actionType"`
	Plan       []string  `json:"plan"`
	Timestamp  time.Time `json:"timestamp"`
}

// Escalates reports whether the tier outranks other.
func (t Tier) Escalates(other Tier) bool {
	return t.rank() > other.rank()
}

func (t Tier) rank() int {
	switch t {
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}
