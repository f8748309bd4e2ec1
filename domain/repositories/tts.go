package repositories

import (
	"context"

	"github.com/satriahrh/suara/domain/entities"
)

// TextToSpeech abstracts speech synthesis backends.
// Implementations buffer the whole response and return it in one slice.
type TextToSpeech interface {
	// SynthesizeAudio converts text to encoded audio using the given voice parameters
	SynthesizeAudio(ctx context.Context, text string, params entities.SynthesisParameters) ([]byte, error)
	// Name returns the provider name used in logs and metrics
	Name() string
}
