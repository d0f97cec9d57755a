package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	lastText string
	audio    []byte
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.lastText = text
	return f.audio, f.err
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	provider := &fakeProvider{audio: []byte("mp3-bytes")}
	adapter := NewAdapter(provider, 0, time.Second)

	audio := adapter.Synthesize(context.Background(), "hello there")
	if string(audio) != "mp3-bytes" {
		t.Fatalf("unexpected audio: %q", audio)
	}
}

func TestSynthesizeNeverRaises(t *testing.T) {
	provider := &fakeProvider{err: errors.New("status 500")}
	adapter := NewAdapter(provider, 0, time.Second)

	if audio := adapter.Synthesize(context.Background(), "hello"); audio != nil {
		t.Fatalf("expected nil audio on provider failure, got %d bytes", len(audio))
	}
}

func TestSynthesizeWithoutProvider(t *testing.T) {
	adapter := NewAdapter(nil, 0, time.Second)
	if adapter.Enabled() {
		t.Fatal("adapter without provider must report disabled")
	}
	if audio := adapter.Synthesize(context.Background(), "hello"); audio != nil {
		t.Fatal("expected nil audio without provider")
	}
}

func TestSynthesizeTruncatesLongText(t *testing.T) {
	provider := &fakeProvider{audio: []byte("x")}
	adapter := NewAdapter(provider, 40, time.Second)

	long := strings.Repeat("a long sentence about feelings. ", 10)
	adapter.Synthesize(context.Background(), long)

	if len([]rune(provider.lastText)) > 40 {
		t.Fatalf("expected truncated input, got %d runes", len([]rune(provider.lastText)))
	}
}

func TestTruncatePrefersSentenceBoundary(t *testing.T) {
	text := "First sentence is here. Second sentence is much longer and will be cut."
	got := Truncate(text, 30)
	if got != "First sentence is here." {
		t.Fatalf("expected sentence-boundary cut, got %q", got)
	}
}

func TestTruncateMultibyteBoundaries(t *testing.T) {
	// A period in the first half must not win the boundary scan just
	// because multibyte runes inflate its byte offset.
	text := "你好你好你." + strings.Repeat("你", 30)
	got := Truncate(text, 20)
	if runes := len([]rune(got)); runes != 20 {
		t.Fatalf("expected 20 runes, got %d: %q", runes, got)
	}

	// A sentence end past the midpoint is still honored.
	late := strings.Repeat("你", 15) + "." + strings.Repeat("你", 20)
	got = Truncate(late, 20)
	if got != strings.Repeat("你", 15)+"." {
		t.Fatalf("expected sentence-boundary cut, got %q", got)
	}
}

func TestTruncateShortTextUntouched(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}
