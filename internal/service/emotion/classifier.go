package emotion

import (
	"context"
	"log"
	"time"

	"github.com/oralabs/ora/backend/internal/model/emotion"
)

// Provider is one classification strategy. Providers report failure
// uniformly through the error return; the classifier decides what to
// try next.
type Provider interface {
	Name() string
	Classify(ctx context.Context, text string) (*emotion.Distribution, error)
}

// Classifier converts free text into an emotion-confidence
// distribution via an ordered provider chain. The final provider is a
// keyword fallback that never fails, so Classify never returns an
// error and never propagates provider failures to the caller.
type Classifier struct {
	providers []Provider
	fallback  Provider
	timeout   time.Duration
}

// NewClassifier builds the classification chain. providers are
// attempted in order; fallback is authoritative when all of them fail.
func NewClassifier(providers []Provider, fallback Provider, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Classifier{providers: providers, fallback: fallback, timeout: timeout}
}

// Classify returns a valid, non-empty distribution for any text. Each
// provider attempt runs under an independent timeout; malformed or
// empty results fall through to the next strategy.
func (c *Classifier) Classify(ctx context.Context, text string) *emotion.Distribution {
	for _, provider := range c.providers {
		dist, err := c.attempt(ctx, provider, text)
		if err != nil {
			log.Printf("[emotion] provider %s failed, trying next: %v", provider.Name(), err)
			continue
		}
		if dist == nil || dist.Len() == 0 {
			log.Printf("[emotion] provider %s returned empty distribution, trying next", provider.Name())
			continue
		}
		return dist
	}

	dist, err := c.fallback.Classify(ctx, text)
	if err != nil || dist == nil || dist.Len() == 0 {
		// The keyword fallback cannot fail; this is belt and braces
		// for a misconfigured chain.
		dist = emotion.NewDistribution()
		dist.Set(emotion.Neutral, 0.7)
	}
	return dist
}

// ProviderNames lists the chain in attempt order, fallback last.
func (c *Classifier) ProviderNames() []string {
	names := make([]string, 0, len(c.providers)+1)
	for _, provider := range c.providers {
		names = append(names, provider.Name())
	}
	if c.fallback != nil {
		names = append(names, c.fallback.Name())
	}
	return names
}

func (c *Classifier) attempt(ctx context.Context, provider Provider, text string) (*emotion.Distribution, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return provider.Classify(attemptCtx, text)
}
