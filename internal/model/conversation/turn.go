package conversation

import (
	"time"

	"github.com/oralabs/ora/backend/internal/model/emotion"
)

// Role distinguishes who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Utterance is one incoming user message. Immutable once received.
type Utterance struct {
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn persists individual conversation turns for context and audit.
type Turn struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Role      Role                  `json:"role"`
	Content   string                `json:"content"`
	Emotion   *emotion.Distribution `json:"emotion,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}
