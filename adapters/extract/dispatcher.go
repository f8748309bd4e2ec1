package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// Dispatcher selects the extractor for a document format and normalizes its output
type Dispatcher struct {
	extractors map[entities.DocumentFormat]repositories.TextExtractor
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher with an extractor for every supported format
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return NewDispatcherWith(logger,
		NewTextExtractor(),
		NewPDFExtractor(),
		NewDocxExtractor(entities.FormatDocx),
		NewDocxExtractor(entities.FormatDoc),
		NewEPUBExtractor(),
	)
}

// NewDispatcherWith creates a dispatcher over the given extractors.
// A later extractor replaces an earlier one registered for the same format.
func NewDispatcherWith(logger *zap.Logger, extractors ...repositories.TextExtractor) *Dispatcher {
	d := &Dispatcher{
		extractors: make(map[entities.DocumentFormat]repositories.TextExtractor, len(extractors)),
		logger:     logger,
	}
	for _, e := range extractors {
		d.extractors[e.Format()] = e
	}
	return d
}

// Extract reads the staged document at path as the given format.
// It returns either a document with non-empty trimmed text or an *entities.ExtractionError.
func (d *Dispatcher) Extract(ctx context.Context, path string, format entities.DocumentFormat) (*entities.ExtractedDocument, error) {
	extractor, ok := d.extractors[format]
	if !ok {
		return nil, entities.NewParseError(format, fmt.Errorf("no extractor for format %q", format))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, entities.NewParseError(format, err)
	}

	d.logger.Debug("Extracting text",
		zap.String("format", string(format)),
		zap.Int64("bytes", info.Size()))

	// Empty uploads have nothing to parse; report them as empty rather than corrupt.
	blank, err := isBlankFile(path)
	if err != nil {
		return nil, entities.NewParseError(format, err)
	}
	if blank {
		d.logger.Info("Document is empty", zap.String("format", string(format)))
		return nil, entities.NewNoContentError(format)
	}

	text, err := safeExtract(ctx, extractor, path)
	if err != nil {
		extractionErr := asExtractionError(format, err)
		d.logger.Warn("Text extraction failed",
			zap.String("format", string(format)),
			zap.String("kind", string(extractionErr.Kind)),
			zap.Error(err))
		return nil, extractionErr
	}

	text = strings.TrimSpace(text)
	if text == "" {
		d.logger.Info("Document yielded no text", zap.String("format", string(format)))
		return nil, entities.NewNoContentError(format)
	}

	d.logger.Info("Text extracted",
		zap.String("format", string(format)),
		zap.Int("chars", len([]rune(text))))

	return &entities.ExtractedDocument{Text: text, Format: format}, nil
}

// safeExtract runs the extractor and turns a parser panic into an error
func safeExtract(ctx context.Context, extractor repositories.TextExtractor, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%s parser failed: %v", extractor.Format(), r)
		}
	}()
	return extractor.ExtractText(ctx, path)
}

// isBlankFile reports whether the file holds only whitespace.
// It stops reading at the first other character.
func isBlankFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if !unicode.IsSpace(c) {
			return false, nil
		}
	}
}

func asExtractionError(format entities.DocumentFormat, err error) *entities.ExtractionError {
	var existing *entities.ExtractionError
	if errors.As(err, &existing) {
		return existing
	}
	return entities.NewParseError(format, err)
}
