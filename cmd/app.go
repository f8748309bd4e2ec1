package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/adapters/extract"
	"github.com/satriahrh/suara/adapters/storage"
	"github.com/satriahrh/suara/adapters/tts"
	"github.com/satriahrh/suara/internal/config"
	"github.com/satriahrh/suara/internal/metrics"
	"github.com/satriahrh/suara/usecase"
)

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	service *usecase.ConversionService
}

// newApp loads configuration and wires adapters into the conversion service
func newApp(ctx context.Context) (*app, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envErr != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	staging, err := storage.NewDiskStaging(cfg.UploadDir, logger)
	if err != nil {
		return nil, err
	}

	textToSpeech, err := tts.CreateProvider(ctx, cfg.TTS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS provider: %w", err)
	}

	m := metrics.New()
	service := usecase.NewConversionService(extract.NewDispatcher(logger), staging, textToSpeech, m, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		service: service,
	}, nil
}
