package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/oralabs/ora/backend/internal/config"
	"github.com/oralabs/ora/backend/internal/handler"
	"github.com/oralabs/ora/backend/internal/handler/health"
	"github.com/oralabs/ora/backend/internal/model/personality"
	dispatchservice "github.com/oralabs/ora/backend/internal/service/dispatch"
	emotionservice "github.com/oralabs/ora/backend/internal/service/emotion"
	generateservice "github.com/oralabs/ora/backend/internal/service/generate"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
	riskservice "github.com/oralabs/ora/backend/internal/service/risk"
	"github.com/oralabs/ora/backend/internal/service/session"
	speechservice "github.com/oralabs/ora/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var openaiClient *openai.Client
	if cfg.OpenAI.Enabled() {
		opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		client := openai.NewClient(opts...)
		openaiClient = &client
	}

	// Classification chain: Ark first, OpenAI second, keywords always.
	var emotionProviders []emotionservice.Provider
	var generateProvider generateservice.Provider
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize ark chat model: %v", err)
			log.Println("continuing without ark-backed classification and generation")
		} else {
			if provider, err := emotionservice.NewLLMProvider(ctx, chatModel); err != nil {
				log.Printf("warning: failed to build ark emotion provider: %v", err)
			} else {
				emotionProviders = append(emotionProviders, provider)
			}
			if provider, err := generateservice.NewLLMProvider(ctx, chatModel); err != nil {
				log.Printf("warning: failed to build ark generation provider: %v", err)
			} else {
				generateProvider = provider
			}
		}
	} else {
		log.Println("ark credentials not configured, skipping primary provider")
	}
	if openaiClient != nil {
		emotionProviders = append(emotionProviders, emotionservice.NewOpenAIProvider(openaiClient, cfg.OpenAI.ChatModel))
	}
	classifier := emotionservice.NewClassifier(emotionProviders, emotionservice.NewKeywordProvider(), cfg.EmotionTimeout)
	if generateProvider == nil {
		log.Println("no generation provider configured, replies fall back to templates")
	}

	// Speech synthesis is optional; the pipeline degrades to text-only.
	var speechProvider speechservice.Provider
	if openaiClient != nil {
		speechProvider = speechservice.NewOpenAIProvider(openaiClient, cfg.OpenAI.TTSModel, cfg.OpenAI.TTSVoice)
		log.Println("speech synthesis enabled")
	} else {
		log.Println("openai credentials not configured, replies are text-only")
	}
	synthesizer := speechservice.NewAdapter(speechProvider, 0, cfg.SpeechTimeout)

	dispatcher := dispatchservice.NewDispatcher(cfg.Webhooks.Endpoints, &http.Client{Timeout: cfg.Webhooks.Timeout})
	if dispatcher.TargetCount() == 0 {
		log.Println("no automation webhooks configured, action events are recorded only")
	}

	profiles := personality.NewMemoryStore(personality.Seed(), cfg.DefaultPersonality)
	sessions := session.NewLRUStore(cfg.Session.MaxUsers, cfg.Session.TTL)
	assessor := riskservice.NewAssessor()
	generator := generateservice.NewGenerator(generateProvider, cfg.GenerationTimeout, nil)

	turns := pipeline.New(classifier, assessor, generator, synthesizer, dispatcher, sessions, profiles)

	capabilities := health.Capabilities{
		EmotionProviders:  classifier.ProviderNames(),
		GenerationEnabled: generateProvider != nil,
		SynthesisEnabled:  synthesizer.Enabled(),
		AutomationTargets: dispatcher.TargetCount(),
	}

	router := handler.NewRouter(turns, profiles, capabilities)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Ora backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
