package tts

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// GoogleConfig configures Google Cloud Text-to-Speech.
// Without a credentials file the client uses Application Default Credentials.
type GoogleConfig struct {
	CredentialsFile string  `env:"GOOGLE_TTS_CREDENTIALS_FILE"`
	VoiceName       string  `env:"GOOGLE_TTS_VOICE_NAME"`
	SpeakingRate    float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
}

// speechSynthesizer is the subset of *texttospeech.Client used here
type speechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// GoogleTTS implements TextToSpeech with Google Cloud Text-to-Speech
type GoogleTTS struct {
	client       speechSynthesizer
	voiceName    string
	speakingRate float64
	logger       *zap.Logger
}

var _ repositories.TextToSpeech = (*GoogleTTS)(nil)

// NewGoogleTTS creates a Cloud Text-to-Speech client
func NewGoogleTTS(ctx context.Context, config GoogleConfig, logger *zap.Logger) (*GoogleTTS, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create text-to-speech client")
	}

	return newGoogleTTSWithClient(client, config, logger), nil
}

func newGoogleTTSWithClient(client speechSynthesizer, config GoogleConfig, logger *zap.Logger) *GoogleTTS {
	return &GoogleTTS{
		client:       client,
		voiceName:    config.VoiceName,
		speakingRate: config.SpeakingRate,
		logger:       logger,
	}
}

// Name implements repositories.TextToSpeech
func (g *GoogleTTS) Name() string {
	return ProviderGoogle
}

// SynthesizeAudio implements repositories.TextToSpeech
func (g *GoogleTTS) SynthesizeAudio(ctx context.Context, text string, params entities.SynthesisParameters) ([]byte, error) {
	locale := params.Locale
	if locale == "" {
		locale = entities.DefaultSynthesisParameters.Locale
	}

	g.logger.Info("Converting text to speech",
		zap.String("provider", ProviderGoogle),
		zap.String("locale", locale),
		zap.String("voiceName", g.voiceName))

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: locale,
			Name:         g.voiceName,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  g.speakingRate,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate audio")
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, errors.New("backend returned no audio")
	}
	return resp.GetAudioContent(), nil
}
