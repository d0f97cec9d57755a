package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/oralabs/ora/backend/internal/model/action"
	"github.com/oralabs/ora/backend/internal/model/conversation"
	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/internal/model/risk"
	"github.com/oralabs/ora/backend/internal/service/generate"
	"github.com/oralabs/ora/backend/internal/service/session"
)

var ErrEmptyMessage = errors.New("message is required")

// historyWindow is how many prior turns the generator sees.
const historyWindow = 6

// Classifier converts text into an emotion distribution.
type Classifier interface {
	Classify(ctx context.Context, text string) *emotion.Distribution
}

// Assessor scans text for tiered crisis indicators.
type Assessor interface {
	Assess(text, userID string) risk.Assessment
}

// Generator produces the reply for an assembled request.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) generate.Result
}

// Synthesizer converts reply text to audio, nil on failure.
type Synthesizer interface {
	Enabled() bool
	Synthesize(ctx context.Context, text string) []byte
}

// Dispatcher delivers action events to automation targets.
type Dispatcher interface {
	Dispatch(ctx context.Context, event action.Event) action.Outcome
	History(userID string) []action.Event
}

// Input is one conversational turn request.
type Input struct {
	UserID    string
	Message   string
	ProfileID string
}

// Result is everything a transport layer needs to answer a turn.
type Result struct {
	Reply          string
	ReplySource    generate.Source
	Audio          []byte
	Dominant       emotion.Label
	Confidence     float64
	Emotions       *emotion.Distribution
	Assessment     risk.Assessment
	Urgency        action.Urgency
	ActionsTaken   []string
	ProcessingTime time.Duration
}

// Pipeline wires one user utterance through classification, risk
// assessment, generation, synthesis and action dispatch.
type Pipeline struct {
	classifier  Classifier
	assessor    Assessor
	generator   Generator
	synthesizer Synthesizer
	dispatcher  Dispatcher
	sessions    session.Store
	profiles    personality.Store
}

// New assembles the turn pipeline.
func New(classifier Classifier, assessor Assessor, generator Generator, synthesizer Synthesizer, dispatcher Dispatcher, sessions session.Store, profiles personality.Store) *Pipeline {
	return &Pipeline{
		classifier:  classifier,
		assessor:    assessor,
		generator:   generator,
		synthesizer: synthesizer,
		dispatcher:  dispatcher,
		sessions:    sessions,
		profiles:    profiles,
	}
}

// ProcessTurn runs one full turn. The only error it returns is for
// empty input; provider outages degrade inside the stages instead.
func (p *Pipeline) ProcessTurn(ctx context.Context, input Input) (*Result, error) {
	started := time.Now()

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	userID := input.UserID
	if userID == "" {
		userID = "anonymous"
	}

	utterance := conversation.Utterance{
		Text:      message,
		UserID:    userID,
		Timestamp: started.UTC(),
	}

	// Classification and risk assessment are independent; run them
	// concurrently and let generation block on both.
	var (
		wg         sync.WaitGroup
		dist       *emotion.Distribution
		assessment risk.Assessment
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dist = p.classifier.Classify(ctx, message)
	}()
	go func() {
		defer wg.Done()
		assessment = p.assessor.Assess(message, userID)
	}()
	wg.Wait()

	dominant, confidence := dist.Dominant()
	profile := p.resolveProfile(input.ProfileID)
	history := p.sessions.Window(userID, historyWindow)

	reply := p.generator.Generate(ctx, generate.Request{
		Utterance:  utterance,
		Dominant:   dominant,
		Confidence: confidence,
		Secondary:  dist.Secondary(),
		History:    history,
		Profile:    profile,
		Tier:       assessment.Tier,
	})

	var audio []byte
	if p.synthesizer != nil && p.synthesizer.Enabled() {
		audio = p.synthesizer.Synthesize(ctx, reply.Text)
	}

	urgency := urgencyForTier(assessment.Tier)
	actionsTaken := p.dispatchActions(ctx, utterance, dominant, assessment, urgency)

	// Session history is appended only once the turn fully succeeded,
	// so a failed turn leaves no partial state.
	p.appendTurns(userID, utterance, dist, reply.Text)

	log.Printf("[pipeline] turn complete user=%s emotion=%s tier=%s source=%s elapsed=%s",
		userID, dominant, assessment.Tier, reply.Source, time.Since(started).Round(time.Millisecond))

	return &Result{
		Reply:          reply.Text,
		ReplySource:    reply.Source,
		Audio:          audio,
		Dominant:       dominant,
		Confidence:     confidence,
		Emotions:       dist,
		Assessment:     assessment,
		Urgency:        urgency,
		ActionsTaken:   actionsTaken,
		ProcessingTime: time.Since(started),
	}, nil
}

// dispatchActions fires at most one event per action type per turn.
func (p *Pipeline) dispatchActions(ctx context.Context, utterance conversation.Utterance, dominant emotion.Label, assessment risk.Assessment, urgency action.Urgency) []string {
	if p.dispatcher == nil || assessment.ActionType == "" {
		return nil
	}

	outcome := p.dispatcher.Dispatch(ctx, action.Event{
		ActionType:  assessment.ActionType,
		UserID:      utterance.UserID,
		Emotion:     string(dominant),
		Urgency:     urgency,
		TextSnippet: utterance.Text,
		Payload: map[string]any{
			"risk_level": string(assessment.Tier),
			"indicators": assessment.Indicators,
			"plan":       assessment.Plan,
		},
	})

	return []string{assessment.ActionType + ":" + string(outcome)}
}

func (p *Pipeline) appendTurns(userID string, utterance conversation.Utterance, dist *emotion.Distribution, reply string) {
	if err := p.sessions.Append(userID, conversation.Turn{
		Role:    conversation.RoleUser,
		Content: utterance.Text,
		Emotion: dist,
	}); err != nil {
		log.Printf("[pipeline] failed to append user turn: %v", err)
		return
	}
	if err := p.sessions.Append(userID, conversation.Turn{
		Role:    conversation.RoleAssistant,
		Content: reply,
	}); err != nil {
		log.Printf("[pipeline] failed to append assistant turn: %v", err)
	}
}

func (p *Pipeline) resolveProfile(profileID string) personality.Profile {
	if profileID != "" {
		if profile, ok := p.profiles.FindByID(profileID); ok {
			return profile
		}
		log.Printf("[pipeline] unknown personality %q, using default", profileID)
	}
	return p.profiles.Default()
}

// History exposes the stored session window for transport handlers.
func (p *Pipeline) History(userID string, n int) []conversation.Turn {
	return p.sessions.Window(userID, n)
}

// ActionHistory exposes recorded dispatch outcomes for a user.
func (p *Pipeline) ActionHistory(userID string) []action.Event {
	if p.dispatcher == nil {
		return nil
	}
	return p.dispatcher.History(userID)
}

func urgencyForTier(tier risk.Tier) action.Urgency {
	switch tier {
	case risk.TierHigh:
		return action.UrgencyCritical
	case risk.TierMedium:
		return action.UrgencyHigh
	default:
		return action.UrgencyNormal
	}
}
