package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
)

// OpenAIProvider synthesizes speech through the OpenAI audio endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.AudioSpeechNewParamsVoice
}

// NewOpenAIProvider wraps an OpenAI client for synthesis. Empty model
// and voice fall back to tts-1 with the alloy voice.
func NewOpenAIProvider(client *openai.Client, model, voice string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SpeechModelTTS1)
	}
	if voice == "" {
		voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}
	return &OpenAIProvider{
		client: client,
		model:  openai.SpeechModel(model),
		voice:  openai.AudioSpeechNewParamsVoice(voice),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Synthesize requests MP3 audio for text. The HTTP status of a failed
// call is surfaced in the returned error for the adapter's log line.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	res, err := p.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          p.model,
		Input:          text,
		Voice:          p.voice,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("speech request: unexpected status %d", res.StatusCode)
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio body: %w", err)
	}
	return audio, nil
}
