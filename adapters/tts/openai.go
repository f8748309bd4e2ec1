package tts

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// OpenAIConfig configures the OpenAI speech endpoint
type OpenAIConfig struct {
	APIKey  string  `env:"OPENAI_API_KEY"`
	BaseURL string  `env:"OPENAI_BASE_URL"`
	Model   string  `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	Voice   string  `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`
	Speed   float64 `env:"OPENAI_TTS_SPEED"`
}

// OpenAITTS implements TextToSpeech with OpenAI audio/speech.
// Voices are multilingual; the spoken language follows the text.
type OpenAITTS struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
	logger *zap.Logger
}

var _ repositories.TextToSpeech = (*OpenAITTS)(nil)

// NewOpenAITTS creates an OpenAI speech backend
func NewOpenAITTS(config OpenAIConfig, logger *zap.Logger) (*OpenAITTS, error) {
	if config.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	voice := config.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	return &OpenAITTS{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		voice:  voice,
		speed:  config.Speed,
		logger: logger,
	}, nil
}

// Name implements repositories.TextToSpeech
func (o *OpenAITTS) Name() string {
	return ProviderOpenAI
}

// SynthesizeAudio implements repositories.TextToSpeech
func (o *OpenAITTS) SynthesizeAudio(ctx context.Context, text string, params entities.SynthesisParameters) ([]byte, error) {
	o.logger.Info("Converting text to speech",
		zap.String("provider", ProviderOpenAI),
		zap.String("model", o.model),
		zap.String("voice", o.voice),
		zap.String("language", params.Language))

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          o.speed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "OpenAI API error")
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read audio")
	}
	if len(audio) == 0 {
		return nil, errors.New("backend returned no audio")
	}
	return audio, nil
}
