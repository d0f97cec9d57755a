package generate

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/oralabs/ora/backend/internal/model/conversation"
	"github.com/oralabs/ora/backend/internal/model/emotion"
	"github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/internal/model/risk"
)

// Source records which path produced a reply.
type Source string

const (
	SourceCrisis   Source = "crisis"
	SourceDirect   Source = "direct"
	SourceProvider Source = "provider"
	SourceTemplate Source = "template"
)

// Request carries everything a provider needs to phrase one reply.
type Request struct {
	Utterance  conversation.Utterance
	Dominant   emotion.Label
	Confidence float64
	Secondary  []emotion.Label
	History    []conversation.Turn
	Profile    personality.Profile
	Tier       risk.Tier
}

// Result is one generated reply plus its provenance.
type Result struct {
	Text   string
	Source Source
}

// Generator produces the reply text for a turn. High-tier turns
// short-circuit to a crisis-safe template; otherwise the provider is
// invoked and template fallback covers provider failure.
type Generator struct {
	provider Provider
	timeout  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. provider may be nil, which forces
// the fallback path. rng may be nil; it is seeded from the clock then.
func NewGenerator(provider Provider, timeout time.Duration, rng *rand.Rand) *Generator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{provider: provider, timeout: timeout, rng: rng}
}

// Generate returns the reply for one turn. It never fails: the worst
// case is a generic empathetic template.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	// Crisis turns never reach the open-ended provider.
	if req.Tier == risk.TierHigh {
		return Result{Text: crisisReply(), Source: SourceCrisis}
	}

	// Common direct questions are answered deterministically without
	// spending a provider round-trip.
	if answer, ok := g.answerDirect(req.Utterance.Text); ok {
		return Result{Text: answer, Source: SourceDirect}
	}

	if g.provider != nil {
		providerCtx, cancel := context.WithTimeout(ctx, g.timeout)
		reply, err := g.provider.Generate(providerCtx, req)
		cancel()
		if err == nil {
			return Result{Text: reply, Source: SourceProvider}
		}
		log.Printf("[generate] provider %s failed, using template fallback: %v", g.provider.Name(), err)
	}

	return Result{Text: g.templateReply(req.Profile.ID, req.Dominant), Source: SourceTemplate}
}

// templateReply picks uniformly among the profile's candidates for the
// dominant emotion.
func (g *Generator) templateReply(profileID string, label emotion.Label) string {
	candidates := fallbackCandidates(profileID, label)
	return g.pick(candidates)
}

func (g *Generator) pick(candidates []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return candidates[g.rng.Intn(len(candidates))]
}
