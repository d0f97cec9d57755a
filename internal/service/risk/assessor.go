package risk

import (
	"fmt"
	"time"

	"github.com/oralabs/ora/backend/internal/model/risk"
	"github.com/oralabs/ora/backend/internal/rules"
)

// Assessor scans raw message text for tiered crisis indicators. The
// scan is independent of the emotion classifier: a message can be
// emotionally neutral by classifier output and still assess as high.
type Assessor struct{}

// NewAssessor creates a risk assessor backed by the shared rule set.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess returns the risk tier and recommended action plan for one
// message. It is a pure function of its input and never fails.
func (a *Assessor) Assess(text, userID string) risk.Assessment {
	now := time.Now().UTC()

	rule, indicators, ok := rules.MatchCrisis(text)
	if !ok {
		return risk.Assessment{
			Tier:       risk.TierLow,
			ActionType: risk.ActionWellnessCheck,
			Plan: []string{
				"Provide empathetic response",
				"Offer reflective follow-up",
			},
			Timestamp: now,
		}
	}

	assessment := risk.Assessment{
		Tier:       rule.Tier,
		Indicators: indicators,
		ActionType: rule.ActionType,
		Timestamp:  now,
	}

	switch rule.Tier {
	case risk.TierHigh:
		assessment.Plan = []string{
			"Contact crisis support immediately",
			"Ensure user safety",
			hotlineLine(),
			"Pause non-essential commitments",
		}
	case risk.TierMedium:
		assessment.Plan = []string{
			"Provide supportive response",
			"Offer coping strategies",
			"Monitor closely",
		}
	}

	return assessment
}

func hotlineLine() string {
	return fmt.Sprintf("Share hotline information (US %s, UK %s)", rules.Hotlines["US"], rules.Hotlines["UK"])
}
