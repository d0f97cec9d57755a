package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/oralabs/ora/backend/internal/model/conversation"
	"github.com/oralabs/ora/backend/internal/model/risk"
)

// Provider produces a reply for a fully assembled generation request.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// LLMProvider runs response generation through an eino chain on the
// configured chat model.
type LLMProvider struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMProvider compiles the generation chain.
func NewLLMProvider(ctx context.Context, chatModel model.ChatModel) (*LLMProvider, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &LLMProvider{chain: runnable}, nil
}

func (p *LLMProvider) Name() string { return "ark" }

// Generate invokes the chain with the emotion-aware system prompt and
// the bounded history window.
func (p *LLMProvider) Generate(ctx context.Context, req Request) (string, error) {
	input := map[string]any{
		"system":  buildSystemPrompt(req),
		"history": buildHistoryMessages(req.History),
		"query":   req.Utterance.Text,
	}

	response, err := p.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	if content == "" {
		return "", fmt.Errorf("empty generation output")
	}
	return content, nil
}

// buildSystemPrompt embeds the personality directives, the emotion
// reading and the care level derived from the risk tier.
func buildSystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are Ora, an emotionally aware voice companion. Replies are spoken aloud: keep them to 1-3 short, natural sentences.\n")

	b.WriteString(fmt.Sprintf("\nPersonality: %s. Tone: %s.\n", req.Profile.Name, req.Profile.Tone))
	for _, directive := range req.Profile.Directives {
		b.WriteString("- ")
		b.WriteString(directive)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nThe user's dominant emotion is %s (confidence %.2f).", req.Dominant, req.Confidence))
	if len(req.Secondary) > 0 {
		names := make([]string, 0, len(req.Secondary))
		for _, label := range req.Secondary {
			names = append(names, string(label))
		}
		b.WriteString(" Secondary emotions: ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(".")
	}

	if req.Tier == risk.TierMedium {
		b.WriteString("\nThe user may be struggling. Respond with extra care: validate the feeling before anything else and gently offer one coping step.")
	}

	b.WriteString("\nAcknowledge the emotion first, then respond to the content. Never diagnose, never lecture.")
	return b.String()
}

func buildHistoryMessages(turns []conversation.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case conversation.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case conversation.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return history
}
