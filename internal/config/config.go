package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/satriahrh/suara/adapters/tts"
)

// Config holds process configuration read from the environment
type Config struct {
	Port          string `env:"PORT" envDefault:"5000"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	AudioDir      string `env:"AUDIO_DIR" envDefault:"audio"`
	MaxUploadSize string `env:"MAX_UPLOAD_SIZE" envDefault:"16M"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	TTS           tts.Config
}

// Load parses and validates configuration from environment variables
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.UploadDir == "" || c.AudioDir == "" {
		return fmt.Errorf("UPLOAD_DIR and AUDIO_DIR must not be empty")
	}
	if c.MaxUploadSize == "" {
		return fmt.Errorf("MAX_UPLOAD_SIZE must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.TTS.Provider != "" && !tts.IsSupportedProvider(c.TTS.Provider) {
		return fmt.Errorf("unsupported TTS_PROVIDER %q. Supported: %s", c.TTS.Provider, strings.Join(tts.Providers, ", "))
	}
	return nil
}

// EnsureDirs creates the upload and audio staging directories if absent
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.UploadDir, c.AudioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// NewLogger builds a production logger, or a development one at debug level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}
