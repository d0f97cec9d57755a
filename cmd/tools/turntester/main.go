package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/oralabs/ora/backend/internal/config"
	"github.com/oralabs/ora/backend/internal/model/personality"
	dispatchservice "github.com/oralabs/ora/backend/internal/service/dispatch"
	emotionservice "github.com/oralabs/ora/backend/internal/service/emotion"
	generateservice "github.com/oralabs/ora/backend/internal/service/generate"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
	riskservice "github.com/oralabs/ora/backend/internal/service/risk"
	"github.com/oralabs/ora/backend/internal/service/session"
	speechservice "github.com/oralabs/ora/backend/internal/service/speech"
)

// Runs one conversational turn against the configured providers and
// prints the full result. Useful for checking credentials and prompt
// behavior without starting the HTTP server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	message := flag.String("message", "", "user utterance to process")
	userID := flag.String("user", "manual-test", "user id for session state")
	profile := flag.String("personality", "", "personality id, empty for the default")
	audioOut := flag.String("audio-out", "", "write synthesized audio to this file when present")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if strings.TrimSpace(*message) == "" {
		flag.Usage()
		log.Fatal("provide the utterance via -message")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	turns := buildPipeline(ctx, cfg)

	result, err := turns.ProcessTurn(ctx, pipeline.Input{
		UserID:    *userID,
		Message:   *message,
		ProfileID: *profile,
	})
	if err != nil {
		log.Fatalf("turn failed: %v", err)
	}

	fmt.Printf("reply (%s): %s\n", result.ReplySource, result.Reply)
	fmt.Printf("emotion: %s (%.2f)\n", result.Dominant, result.Confidence)
	fmt.Printf("risk: %s urgency=%s actions=%v\n", result.Assessment.Tier, result.Urgency, result.ActionsTaken)
	fmt.Printf("elapsed: %s\n", result.ProcessingTime.Round(time.Millisecond))

	if *audioOut != "" {
		if result.Audio == nil {
			log.Println("no audio produced, skipping -audio-out")
			return
		}
		if err := os.WriteFile(*audioOut, result.Audio, 0o644); err != nil {
			log.Fatalf("failed to write audio file: %v", err)
		}
		fmt.Printf("audio: %s (%d bytes)\n", *audioOut, len(result.Audio))
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config) *pipeline.Pipeline {
	var openaiClient *openai.Client
	if cfg.OpenAI.Enabled() {
		opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		client := openai.NewClient(opts...)
		openaiClient = &client
	}

	var emotionProviders []emotionservice.Provider
	var generateProvider generateservice.Provider
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("[WARN] ark chat model unavailable: %v", err)
		} else {
			if provider, err := emotionservice.NewLLMProvider(ctx, chatModel); err == nil {
				emotionProviders = append(emotionProviders, provider)
			}
			if provider, err := generateservice.NewLLMProvider(ctx, chatModel); err == nil {
				generateProvider = provider
			}
		}
	}
	if openaiClient != nil {
		emotionProviders = append(emotionProviders, emotionservice.NewOpenAIProvider(openaiClient, cfg.OpenAI.ChatModel))
	}

	var speechProvider speechservice.Provider
	if openaiClient != nil {
		speechProvider = speechservice.NewOpenAIProvider(openaiClient, cfg.OpenAI.TTSModel, cfg.OpenAI.TTSVoice)
	}

	return pipeline.New(
		emotionservice.NewClassifier(emotionProviders, emotionservice.NewKeywordProvider(), cfg.EmotionTimeout),
		riskservice.NewAssessor(),
		generateservice.NewGenerator(generateProvider, cfg.GenerationTimeout, nil),
		speechservice.NewAdapter(speechProvider, 0, cfg.SpeechTimeout),
		dispatchservice.NewDispatcher(cfg.Webhooks.Endpoints, nil),
		session.NewLRUStore(cfg.Session.MaxUsers, cfg.Session.TTL),
		personality.NewMemoryStore(personality.Seed(), cfg.DefaultPersonality),
	)
}
