package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/repositories"
)

// Supported provider names for TTS_PROVIDER
const (
	ProviderGTranslate = "gtranslate"
	ProviderElevenLabs = "elevenlabs"
	ProviderGoogle     = "google"
	ProviderOpenAI     = "openai"
	ProviderMock       = "mock"
)

// Providers lists every accepted provider name
var Providers = []string{ProviderGTranslate, ProviderElevenLabs, ProviderGoogle, ProviderOpenAI, ProviderMock}

// Config selects and configures the synthesis backend
type Config struct {
	Provider   string        `env:"TTS_PROVIDER" envDefault:"gtranslate"`
	Timeout    time.Duration `env:"TTS_TIMEOUT" envDefault:"60s"`
	GTranslate GTranslateConfig
	ElevenLabs ElevenLabsConfig
	Google     GoogleConfig
	OpenAI     OpenAIConfig
}

// IsSupportedProvider reports whether name is a known provider
func IsSupportedProvider(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

// CreateProvider creates the TextToSpeech backend named by cfg.Provider.
// An empty provider name selects gtranslate, which needs no credentials.
func CreateProvider(ctx context.Context, cfg Config, logger *zap.Logger) (repositories.TextToSpeech, error) {
	providerName := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if providerName == "" {
		providerName = ProviderGTranslate
		logger.Info("TTS_PROVIDER not set, defaulting", zap.String("provider", providerName))
	}

	logger.Info("Creating TTS provider", zap.String("provider", providerName))

	switch providerName {
	case ProviderGTranslate:
		return NewGTranslateTTS(cfg.GTranslate, cfg.Timeout, logger), nil
	case ProviderElevenLabs:
		elevenCfg := cfg.ElevenLabs
		if elevenCfg.Timeout == 0 {
			elevenCfg.Timeout = cfg.Timeout
		}
		return NewElevenLabsTTS(elevenCfg, logger)
	case ProviderGoogle:
		return NewGoogleTTS(ctx, cfg.Google, logger)
	case ProviderOpenAI:
		return NewOpenAITTS(cfg.OpenAI, logger)
	case ProviderMock:
		return NewMockTextToSpeech(logger), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s. Supported: %s", providerName, strings.Join(Providers, ", "))
	}
}
