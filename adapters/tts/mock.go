package tts

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// mp3FrameHeader starts every fake payload so players sniff it as MPEG audio
var mp3FrameHeader = []byte{0xFF, 0xFB, 0x90, 0x64}

// MockTextToSpeech is an offline backend for development and tests
type MockTextToSpeech struct {
	// Err, when set, is returned by every call
	Err error

	mu     sync.Mutex
	calls  []MockCall
	logger *zap.Logger
}

// MockCall records one SynthesizeAudio invocation
type MockCall struct {
	Text   string
	Params entities.SynthesisParameters
}

var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{
		logger: logger,
	}
}

// Name implements repositories.TextToSpeech
func (t *MockTextToSpeech) Name() string {
	return ProviderMock
}

// SynthesizeAudio implements repositories.TextToSpeech
func (t *MockTextToSpeech) SynthesizeAudio(ctx context.Context, text string, params entities.SynthesisParameters) ([]byte, error) {
	t.mu.Lock()
	t.calls = append(t.calls, MockCall{Text: text, Params: params})
	t.mu.Unlock()

	t.logger.Info("Processing text-to-speech",
		zap.String("provider", ProviderMock),
		zap.Int("chars", len(text)),
		zap.String("language", params.Language),
		zap.String("region", params.Region))

	if t.Err != nil {
		return nil, t.Err
	}

	// Mock audio data - size grows with text length
	audio := make([]byte, len(mp3FrameHeader)+len(text)*100)
	copy(audio, mp3FrameHeader)
	for i := len(mp3FrameHeader); i < len(audio); i++ {
		audio[i] = byte(i % 256)
	}

	return audio, nil
}

// Calls returns the recorded invocations
func (t *MockTextToSpeech) Calls() []MockCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]MockCall, len(t.calls))
	copy(out, t.calls)
	return out
}
