package emotion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	emotionmodel "github.com/oralabs/ora/backend/internal/model/emotion"
	emotionsvc "github.com/oralabs/ora/backend/internal/service/emotion"
)

type failingProvider struct {
	calls int
}

func (f *failingProvider) Name() string { return "failing" }

func (f *failingProvider) Classify(context.Context, string) (*emotionmodel.Distribution, error) {
	f.calls++
	return nil, errors.New("provider down")
}

type fixedProvider struct {
	label emotionmodel.Label
}

func (f *fixedProvider) Name() string { return "fixed" }

func (f *fixedProvider) Classify(context.Context, string) (*emotionmodel.Distribution, error) {
	dist := emotionmodel.NewDistribution()
	dist.Set(f.label, 0.9)
	return dist, nil
}

func TestClassifyUsesFirstHealthyProvider(t *testing.T) {
	failing := &failingProvider{}
	classifier := emotionsvc.NewClassifier(
		[]emotionsvc.Provider{failing, &fixedProvider{label: emotionmodel.Joy}},
		emotionsvc.NewKeywordProvider(),
		time.Second,
	)

	dist := classifier.Classify(context.Background(), "hello")
	label, confidence := dist.Dominant()
	if label != emotionmodel.Joy {
		t.Fatalf("expected joy from second provider, got %s", label)
	}
	if confidence != 0.9 {
		t.Fatalf("unexpected confidence %f", confidence)
	}
	if failing.calls != 1 {
		t.Fatalf("expected one attempt on failing provider, got %d", failing.calls)
	}
}

func TestClassifyAllProvidersDownFallsBackToKeywords(t *testing.T) {
	classifier := emotionsvc.NewClassifier(
		[]emotionsvc.Provider{&failingProvider{}, &failingProvider{}},
		emotionsvc.NewKeywordProvider(),
		time.Second,
	)

	dist := classifier.Classify(context.Background(), "I feel really anxious today")
	if dist.Len() == 0 {
		t.Fatal("expected non-empty distribution")
	}
	label, _ := dist.Dominant()
	if label != emotionmodel.Anxiety {
		t.Fatalf("expected anxiety from keyword fallback, got %s", label)
	}
}

func TestClassifyNeverReturnsEmptyOrOutOfRange(t *testing.T) {
	classifier := emotionsvc.NewClassifier(nil, emotionsvc.NewKeywordProvider(), time.Second)

	for _, text := range []string{"hello there", "I am furious", "thank you so much", "zzz"} {
		dist := classifier.Classify(context.Background(), text)
		if dist.Len() == 0 {
			t.Fatalf("empty distribution for %q", text)
		}
		for _, label := range dist.Labels() {
			v := dist.Get(label)
			if v < 0 || v > 1 {
				t.Fatalf("confidence out of range for %q: %s=%f", text, label, v)
			}
		}
	}
}

func TestKeywordProviderDefaultsEngagedWeighted(t *testing.T) {
	provider := emotionsvc.NewKeywordProvider()

	dist, err := provider.Classify(context.Background(), "the train leaves at noon")
	if err != nil {
		t.Fatalf("keyword provider must not fail: %v", err)
	}
	label, confidence := dist.Dominant()
	if label != emotionmodel.Neutral {
		t.Fatalf("expected neutral default, got %s", label)
	}
	if confidence < 0.6 || confidence > 0.7 {
		t.Fatalf("expected neutral confidence in [0.6,0.7], got %f", confidence)
	}
	if dist.Get(emotionmodel.Engaged) == 0 {
		t.Fatal("expected engaged-weighted default distribution")
	}
}

func TestParseDistributionJSONTolerant(t *testing.T) {
	dist, err := emotionsvc.ParseDistributionJSON("Sure! Here you go: {\"emotions\": {\"sadness\": 0.8, \"loneliness\": 0.4}} hope that helps")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	label, _ := dist.Dominant()
	if label != emotionmodel.Sadness {
		t.Fatalf("expected sadness, got %s", label)
	}
}

func TestParseDistributionJSONRejectsGarbage(t *testing.T) {
	if _, err := emotionsvc.ParseDistributionJSON("not json at all"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := emotionsvc.ParseDistributionJSON("{\"emotions\": {\"sparkly\": 1.0}}"); err == nil {
		t.Fatal("expected error for unknown labels only")
	}
}
