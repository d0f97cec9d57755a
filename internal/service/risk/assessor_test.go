package risk_test

import (
	"reflect"
	"testing"

	riskmodel "github.com/oralabs/ora/backend/internal/model/risk"
	risksvc "github.com/oralabs/ora/backend/internal/service/risk"
)

func TestAssessHighRiskPhrase(t *testing.T) {
	assessor := risksvc.NewAssessor()

	got := assessor.Assess("I am going to hurt myself tonight", "user-1")
	if got.Tier != riskmodel.TierHigh {
		t.Fatalf("expected high tier, got %s", got.Tier)
	}
	if got.ActionType != riskmodel.ActionCrisisIntervention {
		t.Fatalf("expected crisis_intervention, got %s", got.ActionType)
	}
	if len(got.Plan) == 0 {
		t.Fatal("expected an action plan for high tier")
	}
}

func TestAssessDefaultsToWellnessCheck(t *testing.T) {
	assessor := risksvc.NewAssessor()

	got := assessor.Assess("the weather is nice today", "user-1")
	if got.Tier != riskmodel.TierLow {
		t.Fatalf("expected low tier, got %s", got.Tier)
	}
	if got.ActionType != riskmodel.ActionWellnessCheck {
		t.Fatalf("expected wellness_check, got %s", got.ActionType)
	}
	if len(got.Indicators) != 0 {
		t.Fatalf("expected no indicators, got %v", got.Indicators)
	}
}

func TestAssessIdempotent(t *testing.T) {
	assessor := risksvc.NewAssessor()
	text := "I feel hopeless and want to give up"

	first := assessor.Assess(text, "user-1")
	second := assessor.Assess(text, "user-1")

	if first.Tier != second.Tier || first.ActionType != second.ActionType {
		t.Fatalf("assessment not idempotent: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(first.Indicators, second.Indicators) {
		t.Fatalf("indicators differ: %v vs %v", first.Indicators, second.Indicators)
	}
}

func TestAssessAnxietyCombinationIsMedium(t *testing.T) {
	assessor := risksvc.NewAssessor()

	got := assessor.Assess("I feel really anxious and can't breathe", "user-1")
	if got.Tier != riskmodel.TierMedium {
		t.Fatalf("expected medium tier, got %s", got.Tier)
	}
	if got.ActionType != riskmodel.ActionAnxietySupport {
		t.Fatalf("expected anxiety_support, got %s", got.ActionType)
	}
}
