package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/rules"
)

// crisisReply is the only response surface for high-tier turns. Crisis
// phrasing is never handed to the open generation provider.
func crisisReply() string {
	var b strings.Builder
	b.WriteString("I'm really concerned about you right now, and I'm glad you told me. ")
	b.WriteString("Your life has value and there are people who want to help. ")
	b.WriteString("Please reach out to a crisis counselor right away")

	regions := make([]string, 0, len(rules.Hotlines))
	for region := range rules.Hotlines {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	lines := make([]string, 0, len(regions))
	for _, region := range regions {
		lines = append(lines, fmt.Sprintf("%s %s", region, rules.Hotlines[region]))
	}
	b.WriteString(" — you can call a hotline now (")
	b.WriteString(strings.Join(lines, ", "))
	b.WriteString("). If you are in immediate danger, call your local emergency number. I'm staying right here with you.")
	return b.String()
}

// fallbackTables maps personality id → emotion → candidate replies.
// Selection among candidates is uniform via the generator's injected
// random source.
var fallbackTables = map[string]map[emotion.Label][]string{
	"empathetic": {
		emotion.Joy: {
			"I can hear the brightness in what you're sharing. What's bringing you this joy?",
			"That sounds genuinely wonderful. I'd love to hear more about it.",
		},
		emotion.Sadness: {
			"I can hear that you're going through a really difficult time. These feelings are valid, and you don't have to face them alone.",
			"That sounds heavy. I'm here with you — would you like to tell me more about what's weighing on you?",
		},
		emotion.Anger: {
			"It sounds like you're feeling really frustrated. Anger often tells us something important about our needs or boundaries.",
			"That would upset me too. What happened?",
		},
		emotion.Anxiety: {
			"Anxiety can feel overwhelming, but you're not alone in this. Let's focus on what you can control right now.",
			"I hear the worry in your words. Let's slow down together — what feels most pressing?",
		},
		emotion.Confusion: {
			"It's okay not to have it all figured out. What part feels most unclear right now?",
		},
		emotion.Fatigue: {
			"It sounds like you're running on empty. Rest is not a luxury — what would help you recharge, even a little?",
		},
		emotion.Calmness: {
			"I sense a peaceful energy in your words. That's wonderful. What's bringing you this sense of calm?",
		},
		emotion.Gratitude: {
			"That warmth comes through clearly. Gratitude like that is worth holding on to.",
		},
		emotion.Loneliness: {
			"Feeling alone is one of the hardest things. I'm here, and I'm listening — you matter.",
		},
		emotion.Neutral: {
			"I'm here and listening. How are you feeling right now?",
			"Thank you for sharing with me. What's on your mind today?",
			"I can hear you clearly. How can I support you today?",
		},
	},
	"practical": {
		emotion.Anxiety: {
			"Anxiety is loud, but it's manageable. Try one slow breath now — then tell me the single biggest worry.",
		},
		emotion.Sadness: {
			"That's hard, and it makes sense you feel low. One small step: what's one thing that helped even slightly before?",
		},
		emotion.Neutral: {
			"Got it. What's the one thing weighing on you most right now?",
			"Thanks for checking in. What would be most useful to talk through?",
		},
	},
	"reflective": {
		emotion.Sadness: {
			"You said things feel heavy. When did you first notice that weight today?",
		},
		emotion.Anxiety: {
			"There's a lot of worry in your words. What is the worry trying to protect you from?",
		},
		emotion.Neutral: {
			"Take your time. What's on your mind today?",
			"I'm listening. What feels most alive for you right now?",
		},
	},
}

const genericFiller = "I'm here with you. Your feelings are important and valid — what would feel most helpful in this moment?"

// fallbackCandidates resolves the reply table for a profile and
// emotion, degrading to the empathetic table and finally to a generic
// filler.
func fallbackCandidates(profileID string, label emotion.Label) []string {
	if table, ok := fallbackTables[profileID]; ok {
		if replies, ok := table[label]; ok && len(replies) > 0 {
			return replies
		}
	}
	if replies, ok := fallbackTables["empathetic"][label]; ok && len(replies) > 0 {
		return replies
	}
	return []string{genericFiller}
}
