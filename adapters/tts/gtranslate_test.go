package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/suara/domain/entities"
)

// fakeTranslateServer answers batchexecute calls with "audio:<text>" as the payload
type fakeTranslateServer struct {
	mu       sync.Mutex
	texts    []string
	language string
	status   int
}

func (f *fakeTranslateServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != gtranslatePath {
		http.NotFound(w, r)
		return
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		w.Write([]byte("denied"))
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var rpc [][][]any
	if err := json.Unmarshal([]byte(r.PostForm.Get("f.req")), &rpc); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var params []any
	if err := json.Unmarshal([]byte(rpc[0][0][1].(string)), &params); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	text := params[0].(string)
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.language = params[1].(string)
	f.mu.Unlock()

	audio := base64.StdEncoding.EncodeToString([]byte("audio:" + text + ";"))
	fmt.Fprintf(w, ")]}'\n\n%d\n", len(audio))
	fmt.Fprintf(w, `[["wrb.fr","jQ1olc","[\"%s\"]",null,null,null,"generic"],["di",42]]`+"\n", audio)
	fmt.Fprint(w, `[["e",4,null,null,123]]`+"\n")
}

func TestGTranslateTTS_SynthesizeAudio(t *testing.T) {
	fake := &fakeTranslateServer{}
	server := httptest.NewServer(fake)
	defer server.Close()

	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: server.URL}, 0, zaptest.NewLogger(t))

	audio, err := tts.SynthesizeAudio(context.Background(), "Hello world", entities.ResolveVoice("en-uk"))
	require.NoError(t, err)

	assert.Equal(t, "audio:Hello world;", string(audio))
	assert.Equal(t, []string{"Hello world"}, fake.texts)
	assert.Equal(t, "en", fake.language)
}

func TestGTranslateTTS_LongTextIsConcatenatedInOrder(t *testing.T) {
	fake := &fakeTranslateServer{}
	server := httptest.NewServer(fake)
	defer server.Close()

	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: server.URL}, 0, zaptest.NewLogger(t))

	text := strings.Repeat("alpha beta gamma delta ", 20)
	audio, err := tts.SynthesizeAudio(context.Background(), text, entities.DefaultSynthesisParameters)
	require.NoError(t, err)

	require.Greater(t, len(fake.texts), 1)
	var want strings.Builder
	for _, chunk := range fake.texts {
		assert.LessOrEqual(t, len(chunk), gtranslateMaxChars)
		want.WriteString("audio:" + chunk + ";")
	}
	assert.Equal(t, want.String(), string(audio))
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(fake.texts, " "))
}

func TestGTranslateTTS_BackendErrors(t *testing.T) {
	fake := &fakeTranslateServer{status: http.StatusForbidden}
	server := httptest.NewServer(fake)
	defer server.Close()

	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: server.URL}, 0, zaptest.NewLogger(t))

	_, err := tts.SynthesizeAudio(context.Background(), "Hello", entities.DefaultSynthesisParameters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGTranslateTTS_NoAudioInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ")]}'\n\n[[\"wrb.fr\",\"jQ1olc\",null,null,null,[3],\"generic\"]]\n")
	}))
	defer server.Close()

	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: server.URL}, 0, zaptest.NewLogger(t))

	_, err := tts.SynthesizeAudio(context.Background(), "Hello", entities.DefaultSynthesisParameters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio stream")
}

func TestGTranslateTTS_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: url}, 0, zaptest.NewLogger(t))

	_, err := tts.SynthesizeAudio(context.Background(), "Hello", entities.DefaultSynthesisParameters)
	assert.Error(t, err)
}

func TestGTranslateTTS_NothingSpeakable(t *testing.T) {
	tts := NewGTranslateTTS(GTranslateConfig{BaseURL: "http://127.0.0.1:1"}, 0, zaptest.NewLogger(t))

	_, err := tts.SynthesizeAudio(context.Background(), " ... !!! ", entities.DefaultSynthesisParameters)
	assert.Error(t, err)
}

func TestGTranslateTTS_EndpointFollowsRegion(t *testing.T) {
	tts := NewGTranslateTTS(GTranslateConfig{}, 0, zaptest.NewLogger(t))

	assert.Equal(t, "https://translate.google.co.uk"+gtranslatePath, tts.endpoint("co.uk"))
	assert.Equal(t, "https://translate.google.com"+gtranslatePath, tts.endpoint(""))
}

func TestGTranslateTTS_PackageRPC(t *testing.T) {
	tts := NewGTranslateTTS(GTranslateConfig{Slow: true}, 0, zaptest.NewLogger(t))

	body, err := tts.packageRPC("Hi", "en")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "f.req="))
	assert.True(t, strings.HasSuffix(body, "&"))
	assert.Contains(t, body, gtranslateRPC)
	assert.Contains(t, body, "true")
}
