package action

import "time"

// Urgency grades how fast an automation target should react.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Outcome classifies the result of one dispatch attempt.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeFailed        Outcome = "failed"
	OutcomeNotConfigured Outcome = "not_configured"
)

// Event is one automation trigger produced by a conversation turn.
type Event struct {
	ActionType   string         `json:"actionType"`
	UserID       string         `json:"userId"`
	Emotion      string         `json:"emotion"`
	Urgency      Urgency        `json:"urgency"`
	TextSnippet  string         `json:"textSnippet"`
	Payload      map[string]any `json:"payload,omitempty"`
	DispatchedAt time.Time      `json:"dispatchedAt"`
	Outcome      Outcome        `json:"outcome"`
}

// WebhookPayload is the wire shape posted to an automation target.
type WebhookPayload struct {
	Trigger     string         `json:"trigger"`
	UserID      string         `json:"user_id"`
	Emotion     string         `json:"emotion"`
	Urgency     string         `json:"urgency"`
	TextSnippet string         `json:"text_snippet"`
	Timestamp   string         `json:"timestamp"`
	Details     map[string]any `json:"details,omitempty"`
}
