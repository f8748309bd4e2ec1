package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
	"github.com/satriahrh/suara/internal/metrics"
)

// DocumentExtractor turns a staged file into normalized text
type DocumentExtractor interface {
	Extract(ctx context.Context, path string, format entities.DocumentFormat) (*entities.ExtractedDocument, error)
}

// Conversion is the outcome of one successful request
type Conversion struct {
	Text       string
	Format     entities.DocumentFormat
	Parameters entities.SynthesisParameters
	Audio      []byte
}

// AudioBase64 returns the audio in the wire encoding used by the HTTP API
func (c *Conversion) AudioBase64() string {
	return base64.StdEncoding.EncodeToString(c.Audio)
}

// ConversionService orchestrates extraction and synthesis for one request
type ConversionService struct {
	extractor    DocumentExtractor
	staging      repositories.UploadStaging
	textToSpeech repositories.TextToSpeech
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewConversionService creates a new conversion service. m may be nil.
func NewConversionService(
	extractor DocumentExtractor,
	staging repositories.UploadStaging,
	tts repositories.TextToSpeech,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ConversionService {
	return &ConversionService{
		extractor:    extractor,
		staging:      staging,
		textToSpeech: tts,
		metrics:      m,
		logger:       logger,
	}
}

// ConvertDocument extracts text from an upload and synthesizes it with the requested voice
func (s *ConversionService) ConvertDocument(ctx context.Context, upload io.Reader, format entities.DocumentFormat, voice string) (*Conversion, error) {
	logger := s.logger.With(zap.String("requestID", uuid.NewString()))

	doc, err := s.extractDocument(ctx, upload, format, logger)
	if err != nil {
		s.metrics.ObserveConversion(metrics.SourceDocument, outcomeOf(err))
		return nil, err
	}

	params := entities.ResolveVoice(voice)
	audio, err := s.synthesize(ctx, doc.Text, params, logger)
	if err != nil {
		s.metrics.ObserveConversion(metrics.SourceDocument, metrics.OutcomeSynthesis)
		return nil, err
	}

	s.metrics.ObserveConversion(metrics.SourceDocument, metrics.OutcomeSuccess)
	return &Conversion{
		Text:       doc.Text,
		Format:     doc.Format,
		Parameters: params,
		Audio:      audio,
	}, nil
}

// ConvertText synthesizes caller-supplied text with the requested voice
func (s *ConversionService) ConvertText(ctx context.Context, text string, voice string) (*Conversion, error) {
	logger := s.logger.With(zap.String("requestID", uuid.NewString()))

	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.ObserveConversion(metrics.SourceText, metrics.OutcomeValidation)
		return nil, entities.NewValidationError("No text provided")
	}

	params := entities.ResolveVoice(voice)
	audio, err := s.synthesize(ctx, text, params, logger)
	if err != nil {
		s.metrics.ObserveConversion(metrics.SourceText, metrics.OutcomeSynthesis)
		return nil, err
	}

	s.metrics.ObserveConversion(metrics.SourceText, metrics.OutcomeSuccess)
	return &Conversion{
		Text:       text,
		Parameters: params,
		Audio:      audio,
	}, nil
}

// extractDocument stages the upload, extracts it and removes the staged file
// on every path before returning.
func (s *ConversionService) extractDocument(ctx context.Context, upload io.Reader, format entities.DocumentFormat, logger *zap.Logger) (*entities.ExtractedDocument, error) {
	staged, err := s.staging.Stage(ctx, upload, format)
	if err != nil {
		logger.Error("Failed to stage upload", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := staged.Release(); err != nil {
			logger.Warn("Failed to remove staged upload",
				zap.String("path", staged.Path()),
				zap.Error(err))
		}
	}()

	started := time.Now()
	doc, err := s.extractor.Extract(ctx, staged.Path(), format)
	s.metrics.ObserveExtraction(string(format), started)
	if err != nil {
		logger.Warn("Extraction failed",
			zap.String("format", string(format)),
			zap.Bool("noContent", entities.IsNoContent(err)),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Extraction completed",
		zap.String("format", string(format)),
		zap.Int("chars", len([]rune(doc.Text))))
	return doc, nil
}

// synthesize calls the backend once and wraps any failure in a SynthesisError
func (s *ConversionService) synthesize(ctx context.Context, text string, params entities.SynthesisParameters, logger *zap.Logger) ([]byte, error) {
	provider := s.textToSpeech.Name()
	started := time.Now()

	audio, err := s.textToSpeech.SynthesizeAudio(ctx, text, params)
	s.metrics.ObserveSynthesis(provider, started)

	if err == nil && len(audio) == 0 {
		err = errors.New("backend returned no audio")
	}
	if err != nil {
		logger.Error("Text-to-speech failed",
			zap.String("provider", provider),
			zap.String("language", params.Language),
			zap.String("region", params.Region),
			zap.Error(err))
		return nil, &entities.SynthesisError{Provider: provider, Err: err}
	}

	logger.Info("TTS completed",
		zap.String("provider", provider),
		zap.Int("audioSize", len(audio)),
		zap.Duration("elapsed", time.Since(started)))
	return audio, nil
}

func outcomeOf(err error) string {
	switch {
	case entities.IsNoContent(err):
		return metrics.OutcomeNoContent
	case entities.IsExtraction(err):
		return metrics.OutcomeExtraction
	case entities.IsValidation(err):
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeExtraction
	}
}
