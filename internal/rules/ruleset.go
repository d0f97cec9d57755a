// Package rules holds the single versioned keyword rule set shared by
// the emotion classifier's fallback and the risk assessor. Keeping both
// scans on one table prevents the vocabularies from drifting apart.
package rules

import (
	"strings"

	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/model/risk"
)

// Version identifies the rule set revision carried in assessments.
const Version = 1

// CrisisRule ties a set of indicator phrases to a risk tier and the
// action type dispatched when one matches.
type CrisisRule struct {
	Tier       risk.Tier
	ActionType string
	Phrases    []string
	// AllOf, when present, requires at least one phrase from each
	// group in addition to the Phrases match being optional.
	AllOf [][]string
}

// emotionBuckets partitions vocabulary into emotion labels. Order
// matters: the first bucket with a hit wins the fallback
// classification.
var emotionBuckets = []struct {
	Label emotion.Label
	Words []string
}{
	{emotion.Anxiety, []string{
		"anxious", "anxiety", "panic", "worried", "worry", "nervous",
		"can't breathe", "cant breathe", "heart is racing", "on edge", "overwhelmed",
	}},
	{emotion.Sadness, []string{
		"sad", "unhappy", "depressed", "down", "crying", "cried", "tearful",
		"heartbroken", "miserable", "grief", "upset", "hurt inside",
	}},
	{emotion.Anger, []string{
		"angry", "furious", "mad at", "rage", "annoyed", "frustrated",
		"fed up", "pissed", "irritated", "resentful",
	}},
	{emotion.Loneliness, []string{
		"lonely", "alone", "isolated", "nobody", "no one cares",
		"no friends", "abandoned", "left out",
	}},
	{emotion.Fatigue, []string{
		"tired", "exhausted", "drained", "burned out", "burnt out",
		"worn out", "no energy", "sleepy", "can't sleep",
	}},
	{emotion.Confusion, []string{
		"confused", "lost", "don't understand", "dont understand",
		"unsure", "don't know what", "mixed up", "unclear",
	}},
	{emotion.Joy, []string{
		"happy", "great news", "excited", "wonderful", "amazing", "fantastic",
		"thrilled", "delighted", "love it", "so good",
	}},
	{emotion.Gratitude, []string{
		"thank you", "thanks", "grateful", "appreciate", "thankful",
	}},
	{emotion.Calmness, []string{
		"calm", "peaceful", "relaxed", "at ease", "content", "serene",
	}},
}

// crisisRules are evaluated top-down; the first matching rule fixes
// the tier and action type for the turn.
var crisisRules = []CrisisRule{
	{
		Tier:       risk.TierHigh,
		ActionType: risk.ActionCrisisIntervention,
		Phrases: []string{
			"want to die", "kill myself", "suicide", "suicidal", "end it all",
			"better off dead", "no point living", "no point in living",
			"hurt myself", "self-harm", "self harm", "overdose",
			"jump off", "hang myself", "end my life",
		},
	},
	{
		Tier:       risk.TierMedium,
		ActionType: risk.ActionAnxietySupport,
		AllOf: [][]string{
			{"anxious", "anxiety", "panic", "panicking", "nervous", "scared"},
			{"can't breathe", "cant breathe", "heart is racing", "heart racing", "chest is tight", "shaking"},
		},
	},
	{
		Tier:       risk.TierMedium,
		ActionType: risk.ActionDepressionCare,
		AllOf: [][]string{
			{"sad", "depressed", "down", "empty", "crying", "miserable"},
			{"alone", "lonely", "nobody", "no one", "isolated"},
		},
	},
	{
		Tier:       risk.TierMedium,
		ActionType: risk.ActionStressIntervention,
		Phrases: []string{
			"hopeless", "worthless", "a burden", "give up", "giving up",
			"can't go on", "cant go on", "end the pain", "no way out",
			"everyone would be better", "tired of living",
		},
	},
}

// Hotlines carried into crisis replies and action plans.
var Hotlines = map[string]string{
	"US": "988",
	"UK": "116 123",
	"CA": "1-833-456-4566",
	"AU": "13 11 14",
}

// MatchEmotion returns the first emotion bucket containing a keyword
// of text, or false when nothing matches.
func MatchEmotion(text string) (emotion.Label, bool) {
	normalized := strings.ToLower(text)
	for _, bucket := range emotionBuckets {
		for _, word := range bucket.Words {
			if strings.Contains(normalized, word) {
				return bucket.Label, true
			}
		}
	}
	return "", false
}

// MatchCrisis scans text against the tiered crisis rules and returns
// the first match plus the indicator phrases that fired.
func MatchCrisis(text string) (CrisisRule, []string, bool) {
	normalized := strings.ToLower(text)
	for _, rule := range crisisRules {
		if indicators, ok := matchRule(normalized, rule); ok {
			return rule, indicators, true
		}
	}
	return CrisisRule{}, nil, false
}

func matchRule(normalized string, rule CrisisRule) ([]string, bool) {
	var indicators []string
	for _, phrase := range rule.Phrases {
		if strings.Contains(normalized, phrase) {
			indicators = append(indicators, phrase)
		}
	}
	if len(indicators) > 0 {
		return indicators, true
	}

	if len(rule.AllOf) == 0 {
		return nil, false
	}
	for _, group := range rule.AllOf {
		hit := ""
		for _, phrase := range group {
			if strings.Contains(normalized, phrase) {
				hit = phrase
				break
			}
		}
		if hit == "" {
			return nil, false
		}
		indicators = append(indicators, hit)
	}
	return indicators, true
}

// CopingStrategies returns emotion-appropriate techniques attached to
// medium and low tier action plans.
func CopingStrategies(label emotion.Label) []string {
	switch label {
	case emotion.Anxiety:
		return []string{
			"Try deep breathing: 4 counts in, 6 counts out",
			"Ground yourself: name 5 things you can see, 4 you can touch",
			"Practice progressive muscle relaxation",
		}
	case emotion.Sadness, emotion.Loneliness:
		return []string{
			"Allow yourself to feel the emotion without judgment",
			"Reach out to a trusted friend or family member",
			"Engage in one small self-care activity",
		}
	case emotion.Anger:
		return []string{
			"Take a pause before responding",
			"Try physical exercise to release tension",
			"Identify what need isn't being met",
		}
	default:
		return []string{
			"Practice mindful breathing",
			"Connect with your support system",
			"Be gentle with yourself",
		}
	}
}
