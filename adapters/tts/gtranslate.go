package tts

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

const (
	gtranslateRPC       = "jQ1olc"
	gtranslatePath      = "/_/TranslateWebserverUi/data/batchexecute"
	gtranslateMaxChars  = 100
	gtranslateUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/47.0.2526.106 Safari/537.36"
)

var gtranslateAudioPattern = regexp.MustCompile(`jQ1olc","\[\\"(.*)\\"]`)

// GTranslateConfig configures the Google Translate speech endpoint
type GTranslateConfig struct {
	// BaseURL overrides https://translate.google.<region>; the region is ignored when set
	BaseURL string `env:"GTRANSLATE_BASE_URL"`
	Slow    bool   `env:"GTRANSLATE_SLOW"`
}

// GTranslateTTS implements TextToSpeech with the Google Translate read-aloud endpoint.
// Language and Region (the translate.google top-level domain) select the voice.
type GTranslateTTS struct {
	baseURL string
	slow    bool
	client  *http.Client
	logger  *zap.Logger
}

var _ repositories.TextToSpeech = (*GTranslateTTS)(nil)

// NewGTranslateTTS creates a Google Translate TTS backend
func NewGTranslateTTS(config GTranslateConfig, timeout time.Duration, logger *zap.Logger) *GTranslateTTS {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GTranslateTTS{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		slow:    config.Slow,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Name implements repositories.TextToSpeech
func (g *GTranslateTTS) Name() string {
	return ProviderGTranslate
}

// SynthesizeAudio implements repositories.TextToSpeech.
// The endpoint accepts at most 100 characters per call, so text is split on
// word boundaries and the MP3 segments are concatenated in order.
func (g *GTranslateTTS) SynthesizeAudio(ctx context.Context, text string, params entities.SynthesisParameters) ([]byte, error) {
	chunks := splitText(text, gtranslateMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no speakable text")
	}

	endpoint := g.endpoint(params.Region)
	g.logger.Info("Converting text to speech",
		zap.String("provider", ProviderGTranslate),
		zap.String("language", params.Language),
		zap.String("region", params.Region),
		zap.Int("chunks", len(chunks)))

	var audio bytes.Buffer
	for i, chunk := range chunks {
		segment, err := g.synthesizeChunk(ctx, endpoint, chunk, params.Language)
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		audio.Write(segment)

		g.logger.Debug("Received audio segment",
			zap.Int("chunkNumber", i+1),
			zap.Int("chunkSize", len(segment)),
			zap.Int("totalBytes", audio.Len()))
	}

	return audio.Bytes(), nil
}

func (g *GTranslateTTS) endpoint(region string) string {
	base := g.baseURL
	if base == "" {
		if region == "" {
			region = entities.DefaultSynthesisParameters.Region
		}
		base = "https://translate.google." + region
	}
	return base + gtranslatePath
}

func (g *GTranslateTTS) synthesizeChunk(ctx context.Context, endpoint, text, language string) ([]byte, error) {
	body, err := g.packageRPC(text, language)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	httpReq.Header.Set("Referer", "http://translate.google.com/")
	httpReq.Header.Set("User-Agent", gtranslateUserAgent)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%d (%s) from TTS API: %s",
			resp.StatusCode, statusHint(resp.StatusCode), strings.TrimSpace(string(errorBody)))
	}

	return parseAudioResponse(resp.Body)
}

// packageRPC builds the f.req form body understood by batchexecute
func (g *GTranslateTTS) packageRPC(text, language string) (string, error) {
	var speed any
	if g.slow {
		speed = true
	}

	parameter, err := json.Marshal([]any{text, language, speed, "null"})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	rpc, err := json.Marshal([][][]any{{{gtranslateRPC, string(parameter), nil, "generic"}}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	return url.Values{"f.req": {string(rpc)}}.Encode() + "&", nil
}

func parseAudioResponse(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var audio bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, gtranslateRPC) {
			continue
		}
		match := gtranslateAudioPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode audio: %w", err)
		}
		audio.Write(decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if audio.Len() == 0 {
		return nil, fmt.Errorf("no audio stream in response; unsupported language or text")
	}
	return audio.Bytes(), nil
}

func statusHint(code int) string {
	switch {
	case code == http.StatusForbidden:
		return "bad token or upstream API changes"
	case code == http.StatusNotFound:
		return "unsupported region"
	case code == http.StatusTooManyRequests:
		return "too many requests"
	case code >= 500:
		return "upstream API error"
	default:
		return http.StatusText(code)
	}
}
