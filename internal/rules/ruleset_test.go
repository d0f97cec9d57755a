package rules

import (
	"testing"

	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/model/risk"
)

func TestMatchEmotionAnxiety(t *testing.T) {
	label, ok := MatchEmotion("I feel really anxious about tomorrow")
	if !ok {
		t.Fatal("expected a bucket match")
	}
	if label != emotion.Anxiety {
		t.Fatalf("expected anxiety, got %s", label)
	}
}

func TestMatchEmotionNoHit(t *testing.T) {
	if _, ok := MatchEmotion("the meeting is at three"); ok {
		t.Fatal("expected no bucket match for neutral text")
	}
}

func TestMatchCrisisHighTier(t *testing.T) {
	rule, indicators, ok := MatchCrisis("sometimes I just want to end it all")
	if !ok {
		t.Fatal("expected crisis match")
	}
	if rule.Tier != risk.TierHigh {
		t.Fatalf("expected high tier, got %s", rule.Tier)
	}
	if rule.ActionType != risk.ActionCrisisIntervention {
		t.Fatalf("expected crisis_intervention, got %s", rule.ActionType)
	}
	if len(indicators) == 0 {
		t.Fatal("expected matched indicators")
	}
}

func TestMatchCrisisAnxietyCombination(t *testing.T) {
	rule, indicators, ok := MatchCrisis("I'm so anxious and I can't breathe")
	if !ok {
		t.Fatal("expected crisis match for anxiety combination")
	}
	if rule.Tier != risk.TierMedium {
		t.Fatalf("expected medium tier, got %s", rule.Tier)
	}
	if rule.ActionType != risk.ActionAnxietySupport {
		t.Fatalf("expected anxiety_support, got %s", rule.ActionType)
	}
	if len(indicators) != 2 {
		t.Fatalf("expected an indicator per group, got %v", indicators)
	}
}

func TestMatchCrisisRequiresBothGroups(t *testing.T) {
	// Anxiety language alone, without the somatic phrase, stays below medium.
	if _, _, ok := MatchCrisis("I'm a bit nervous about the interview"); ok {
		t.Fatal("single-group hit should not trigger a medium rule")
	}
}

func TestMatchCrisisDepressionCombination(t *testing.T) {
	rule, _, ok := MatchCrisis("I feel so sad and completely alone")
	if !ok {
		t.Fatal("expected crisis match")
	}
	if rule.ActionType != risk.ActionDepressionCare {
		t.Fatalf("expected depression_care, got %s", rule.ActionType)
	}
}

func TestCopingStrategiesFallback(t *testing.T) {
	if got := CopingStrategies(emotion.Neutral); len(got) == 0 {
		t.Fatal("expected default strategies")
	}
}
