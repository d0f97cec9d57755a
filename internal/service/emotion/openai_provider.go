package emotion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/oralabs/ora/backend/internal/model/emotion"
)

// OpenAIProvider is the secondary classification strategy, used when
// the primary chain is unavailable or misbehaving.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider wraps an OpenAI chat-completions client.
func NewOpenAIProvider(client *openai.Client, model string) *OpenAIProvider {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIProvider{client: client, model: model}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Classify sends the strict-JSON classification prompt and parses the
// reply with the same tolerant extractor as the primary provider.
func (p *OpenAIProvider) Classify(ctx context.Context, text string) (*emotion.Distribution, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifierSystemPrompt),
			openai.UserMessage(text),
		},
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty message content")
	}

	return ParseDistributionJSON(content)
}
