package pipeline

import (
	"time"

	"github.com/oralabs/ora/backend/internal/model/action"
	"github.com/oralabs/ora/backend/internal/model/conversation"
	"github.com/oralabs/ora/backend/internal/model/risk"
)

// Summary aggregates a user's recent conversational and risk state.
type Summary struct {
	UserID            string         `json:"userId"`
	ConversationCount int            `json:"conversationCount"`
	DominantEmotion   string         `json:"dominantEmotion"`
	EmotionCounts     map[string]int `json:"emotionCounts"`
	CurrentRisk       risk.Tier      `json:"currentRisk"`
	HighRiskEpisodes  int            `json:"highRiskEpisodes"`
	LastConversation  *time.Time     `json:"lastConversation,omitempty"`
}

// Summarize derives a wellness summary from the stored session turns
// and the recorded action history. Any recent critical dispatch lifts
// the current risk to high; more than two high-urgency dispatches lift
// it to medium.
func (p *Pipeline) Summarize(userID string) Summary {
	turns := p.sessions.Get(userID)

	summary := Summary{
		UserID:          userID,
		DominantEmotion: "neutral",
		EmotionCounts:   make(map[string]int),
	}

	// seen keeps first-appearance order so ties resolve to the label
	// observed earliest, not to map iteration order.
	var seen []string
	var userTurns int
	for _, turn := range turns {
		if turn.Role != conversation.RoleUser {
			continue
		}
		userTurns++
		if turn.Emotion == nil {
			continue
		}
		label, _ := turn.Emotion.Dominant()
		if summary.EmotionCounts[string(label)] == 0 {
			seen = append(seen, string(label))
		}
		summary.EmotionCounts[string(label)]++
	}
	summary.ConversationCount = userTurns

	best := 0
	for _, label := range seen {
		if count := summary.EmotionCounts[label]; count > best {
			best = count
			summary.DominantEmotion = label
		}
	}

	if len(turns) > 0 {
		last := turns[len(turns)-1].CreatedAt
		summary.LastConversation = &last
	}

	summary.CurrentRisk = risk.TierLow
	var criticals, highs int
	for _, event := range p.ActionHistory(userID) {
		switch event.Urgency {
		case action.UrgencyCritical:
			criticals++
		case action.UrgencyHigh:
			highs++
		}
	}
	summary.HighRiskEpisodes = criticals
	if criticals > 0 {
		summary.CurrentRisk = risk.TierHigh
	} else if highs > 2 {
		summary.CurrentRisk = risk.TierMedium
	}

	return summary
}
