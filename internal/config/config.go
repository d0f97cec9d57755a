package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/oralabs/ora/backend/internal/model/risk"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	OpenAI   OpenAIConfig
	Session  SessionConfig
	Webhooks WebhookConfig

	DefaultPersonality string
	EmotionTimeout     time.Duration
	GenerationTimeout  time.Duration
	SpeechTimeout      time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	emotionTimeout, err := parseDurationSecondsEnv("EMOTION_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, err
	}
	generationTimeout, err := parseDurationSecondsEnv("GENERATION_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	speechTimeout, err := parseDurationSecondsEnv("SPEECH_TIMEOUT", 12*time.Second)
	if err != nil {
		return nil, err
	}

	webhooks, err := loadWebhookConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:             server,
		AI:                 ai,
		OpenAI:             loadOpenAIConfig(),
		Session:            session,
		Webhooks:           webhooks,
		DefaultPersonality: getEnvOrDefault("DEFAULT_PERSONALITY", "empathetic"),
		EmotionTimeout:     emotionTimeout,
		GenerationTimeout:  generationTimeout,
		SpeechTimeout:      speechTimeout,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as given.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig holds Ark chat-model settings. This is the primary provider
// for both emotion classification and reply generation.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel creates a model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: set ARK_API_KEY + ARK_MODEL or the AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// OpenAIConfig holds the secondary classifier and speech-synthesis
// settings. Classification falls back to OpenAI when Ark is down;
// synthesis uses the speech endpoint directly.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	ChatModel string
	TTSModel  string
	TTSVoice  string
}

// Enabled reports whether an API key is configured.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		APIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:   strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		ChatModel: strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")),
		TTSModel:  getEnvOrDefault("OPENAI_TTS_MODEL", "tts-1"),
		TTSVoice:  getEnvOrDefault("OPENAI_TTS_VOICE", "nova"),
	}
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	MaxUsers int
	TTL      time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	maxUsers := 1024
	if override, err := parseOptionalIntEnv("SESSION_MAX_USERS"); err != nil {
		return SessionConfig{}, err
	} else if override != nil && *override > 0 {
		maxUsers = *override
	}

	ttl := 24 * time.Hour
	if override, err := parseOptionalIntEnv("SESSION_TTL_HOURS"); err != nil {
		return SessionConfig{}, err
	} else if override != nil && *override > 0 {
		ttl = time.Duration(*override) * time.Hour
	}

	return SessionConfig{MaxUsers: maxUsers, TTL: ttl}, nil
}

// WebhookConfig maps action types to automation endpoints. An unset
// variable leaves that action type unconfigured.
type WebhookConfig struct {
	Endpoints map[string]string
	Timeout   time.Duration
}

func loadWebhookConfig() (WebhookConfig, error) {
	timeout, err := parseDurationSecondsEnv("WEBHOOK_TIMEOUT", 5*time.Second)
	if err != nil {
		return WebhookConfig{}, err
	}

	vars := map[string]string{
		risk.ActionCrisisIntervention: "WEBHOOK_CRISIS_INTERVENTION",
		risk.ActionAnxietySupport:     "WEBHOOK_ANXIETY_SUPPORT",
		risk.ActionDepressionCare:     "WEBHOOK_DEPRESSION_CARE",
		risk.ActionStressIntervention: "WEBHOOK_STRESS_INTERVENTION",
		risk.ActionWellnessCheck:      "WEBHOOK_WELLNESS_CHECK",
	}

	endpoints := make(map[string]string)
	for actionType, key := range vars {
		if url := strings.TrimSpace(os.Getenv(key)); url != "" {
			endpoints[actionType] = url
		}
	}

	return WebhookConfig{Endpoints: endpoints, Timeout: timeout}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationSecondsEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	seconds, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if seconds == nil || *seconds <= 0 {
		return defaultValue, nil
	}
	return time.Duration(*seconds) * time.Second, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
