package speech

import (
	"context"
	"log"
	"strings"
	"time"
)

const (
	defaultMaxTextRunes = 600
	defaultTimeout      = 12 * time.Second
)

// Provider converts plain text to audio bytes.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Adapter wraps a synthesis provider with text truncation and graceful
// degradation: any provider error yields nil audio, never an error.
// Callers treat nil as text-only mode.
type Adapter struct {
	provider     Provider
	maxTextRunes int
	timeout      time.Duration
}

// NewAdapter creates the degradation wrapper. provider may be nil when
// synthesis is not configured; Synthesize then always returns nil.
func NewAdapter(provider Provider, maxTextRunes int, timeout time.Duration) *Adapter {
	if maxTextRunes <= 0 {
		maxTextRunes = defaultMaxTextRunes
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{provider: provider, maxTextRunes: maxTextRunes, timeout: timeout}
}

// Enabled reports whether a provider is configured.
func (a *Adapter) Enabled() bool {
	return a != nil && a.provider != nil
}

// Synthesize returns audio for text, or nil when synthesis is
// unavailable or fails. Diagnostics go to the log, never to the user.
func (a *Adapter) Synthesize(ctx context.Context, text string) []byte {
	if !a.Enabled() {
		return nil
	}

	text = Truncate(strings.TrimSpace(text), a.maxTextRunes)
	if text == "" {
		return nil
	}

	synthCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	audio, err := a.provider.Synthesize(synthCtx, text)
	if err != nil {
		log.Printf("[speech] provider %s synthesis failed, degrading to text-only: %v", a.provider.Name(), err)
		return nil
	}
	if len(audio) == 0 {
		log.Printf("[speech] provider %s returned empty audio, degrading to text-only", a.provider.Name())
		return nil
	}
	return audio
}

// Truncate bounds text to max runes, cutting at the last sentence or
// word boundary that fits so spoken output does not stop mid-word.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	// Boundary scans stay in rune space; byte indices would shift the
	// max/2 comparison on multibyte text.
	cut := runes[:max]
	for i := len(cut) - 1; i > max/2; i-- {
		switch cut[i] {
		case '.', '!', '?':
			return string(cut[:i+1])
		}
	}
	for i := len(cut) - 1; i > 0; i-- {
		if cut[i] == ' ' {
			return string(cut[:i])
		}
	}
	return string(cut)
}
