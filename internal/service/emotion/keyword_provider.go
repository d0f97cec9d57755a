package emotion

import (
	"context"

	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/rules"
)

const (
	keywordConfidence = 0.8
	neutralConfidence = 0.7
	engagedConfidence = 0.6
)

// KeywordProvider is the deterministic fallback classifier backed by
// the shared rule set. It performs no I/O and never fails.
type KeywordProvider struct{}

// NewKeywordProvider returns the fallback strategy.
func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{}
}

func (p *KeywordProvider) Name() string { return "keyword" }

// Classify returns the first matching emotion bucket at a fixed
// confidence, or an engaged-weighted neutral distribution when no
// vocabulary matches.
func (p *KeywordProvider) Classify(_ context.Context, text string) (*emotion.Distribution, error) {
	dist := emotion.NewDistribution()
	if label, ok := rules.MatchEmotion(text); ok {
		dist.Set(label, keywordConfidence)
		return dist, nil
	}

	dist.Set(emotion.Neutral, neutralConfidence)
	dist.Set(emotion.Engaged, engagedConfidence)
	return dist, nil
}
