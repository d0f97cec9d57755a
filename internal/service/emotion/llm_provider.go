package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/oralabs/ora/backend/internal/model/emotion"
)

const classifierSystemPrompt = "You are an emotion analyst. Read the user's message and score the emotions it expresses.\n" +
	"Output requirements: return ONLY a JSON object of the form {\"emotions\": {<label>: <confidence>}}. " +
	"Labels must come from: joy, sadness, anger, anxiety, confusion, fatigue, calmness, gratitude, loneliness, neutral. " +
	"Confidence is a number between 0 and 1. Include only labels that apply, at least one. No extra text."

const classifierUserPrompt = "Message:\n{text}\n\nReturn the JSON object."

// LLMProvider runs emotion classification through an eino chain on the
// configured chat model.
type LLMProvider struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMProvider compiles the classification chain. chatModel may be
// shared with the response generator.
func NewLLMProvider(ctx context.Context, chatModel model.ChatModel) (*LLMProvider, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	return &LLMProvider{chain: runnable}, nil
}

func (p *LLMProvider) Name() string { return "ark" }

// Classify invokes the chain and parses its JSON output into a
// distribution. Malformed output is an error so the chain moves on.
func (p *LLMProvider) Classify(ctx context.Context, text string) (*emotion.Distribution, error) {
	msg, err := p.chain.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		return nil, err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return nil, fmt.Errorf("empty classifier output")
	}
	return ParseDistributionJSON(msg.Content)
}

type classifierPayload struct {
	Emotions map[string]float64 `json:"emotions"`
}

// ParseDistributionJSON extracts the first JSON object from raw model
// output and converts it into a distribution of known labels.
func ParseDistributionJSON(content string) (*emotion.Distribution, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	if len(payload.Emotions) == 0 {
		return nil, fmt.Errorf("no emotions in classifier output")
	}

	dist := emotion.NewDistribution()
	for _, label := range knownLabels {
		if confidence, ok := payload.Emotions[string(label)]; ok {
			dist.Set(label, confidence)
		}
	}
	if dist.Len() == 0 {
		return nil, fmt.Errorf("no recognized labels in classifier output")
	}
	return dist, nil
}

var knownLabels = []emotion.Label{
	emotion.Joy, emotion.Sadness, emotion.Anger, emotion.Anxiety,
	emotion.Confusion, emotion.Fatigue, emotion.Calmness,
	emotion.Gratitude, emotion.Loneliness, emotion.Neutral,
}
