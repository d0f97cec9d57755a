package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oralabs/ora/backend/internal/model/action"
)

const (
	defaultTimeout    = 5 * time.Second
	maxHistoryPerUser = 20
	maxSnippetLen     = 200
	historyUsers      = 1024
	historyTTL        = 24 * time.Hour
)

// Dispatcher resolves action types to configured automation webhooks
// and posts structured events. A missing or failing target never
// breaks the conversational turn.
type Dispatcher struct {
	endpoints map[string]string
	client    *http.Client

	mu      sync.Mutex
	history *expirable.LRU[string, []action.Event]
}

// NewDispatcher creates a dispatcher for the given action_type→URL
// registry. client may be nil; a short-timeout default is used then.
func NewDispatcher(endpoints map[string]string, client *http.Client) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	copied := make(map[string]string, len(endpoints))
	for actionType, url := range endpoints {
		if url != "" {
			copied[actionType] = url
		}
	}
	return &Dispatcher{
		endpoints: copied,
		client:    client,
		history:   expirable.NewLRU[string, []action.Event](historyUsers, nil, historyTTL),
	}
}

// Configured reports whether an endpoint is registered for actionType.
func (d *Dispatcher) Configured(actionType string) bool {
	_, ok := d.endpoints[actionType]
	return ok
}

// TargetCount reports how many automation targets are registered.
func (d *Dispatcher) TargetCount() int {
	return len(d.endpoints)
}

// Dispatch posts the event to its registered endpoint and records the
// outcome. Unregistered action types return not_configured without any
// network I/O. No retries: each turn re-evaluates independently.
func (d *Dispatcher) Dispatch(ctx context.Context, event action.Event) action.Outcome {
	event.DispatchedAt = time.Now().UTC()
	event.TextSnippet = snippet(event.TextSnippet)

	url, ok := d.endpoints[event.ActionType]
	if !ok {
		event.Outcome = action.OutcomeNotConfigured
		d.record(event)
		return event.Outcome
	}

	event.Outcome = d.post(ctx, url, event)
	if event.Outcome == action.OutcomeFailed {
		log.Printf("[dispatch] action %s for user=%s failed", event.ActionType, event.UserID)
	}
	d.record(event)
	return event.Outcome
}

// History returns the user's recorded outcomes, most recent first.
func (d *Dispatcher) History(userID string) []action.Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	events, ok := d.history.Get(userID)
	if !ok {
		return nil
	}
	copied := make([]action.Event, len(events))
	copy(copied, events)
	return copied
}

func (d *Dispatcher) post(ctx context.Context, url string, event action.Event) action.Outcome {
	payload := action.WebhookPayload{
		Trigger:     event.ActionType,
		UserID:      event.UserID,
		Emotion:     event.Emotion,
		Urgency:     string(event.Urgency),
		TextSnippet: event.TextSnippet,
		Timestamp:   event.DispatchedAt.Format(time.RFC3339),
		Details:     event.Payload,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[dispatch] failed to marshal payload for %s: %v", event.ActionType, err)
		return action.OutcomeFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("[dispatch] failed to build request for %s: %v", event.ActionType, err)
		return action.OutcomeFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("[dispatch] webhook %s unreachable: %v", event.ActionType, err)
		return action.OutcomeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return action.OutcomeSuccess
	}
	log.Printf("[dispatch] webhook %s returned status %d", event.ActionType, resp.StatusCode)
	return action.OutcomeFailed
}

// record prepends the event to the user's bounded history.
func (d *Dispatcher) record(event action.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	events, _ := d.history.Get(event.UserID)
	events = append([]action.Event{event}, events...)
	if len(events) > maxHistoryPerUser {
		events = events[:maxHistoryPerUser]
	}
	d.history.Add(event.UserID, events)
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSnippetLen {
		return text
	}
	return string(runes[:maxSnippetLen])
}
