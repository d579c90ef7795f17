package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/adapter"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/prompt"
)

// countingTransport records round trips and fails them all.
type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("network disabled in test")
}

type recordingProvider struct {
	reply  string
	err    error
	prompt string
}

func (r *recordingProvider) Name() string { return "recording" }

func (r *recordingProvider) Comment(_ context.Context, p string) (string, error) {
	r.prompt = p
	return r.reply, r.err
}

func TestAnnotateStripsFence(t *testing.T) {
	p := &recordingProvider{reply: "```py\n# add numbers\ndef add(a, b):\n    return a + b\n```"}
	d := New(&config.Config{}, WithProvider(p))

	got, err := d.Annotate(context.Background(), Request{
		Filename:   "math.py",
		Code:       "def add(a, b):\n    return a + b",
		TargetLang: "English",
	})
	require.NoError(t, err)
	assert.Equal(t, "# add numbers\ndef add(a, b):\n    return a + b", got)

	assert.Contains(t, p.prompt, "```py\ndef add(a, b):\n    return a + b\n```")
	assert.Contains(t, p.prompt, "English")
}

func TestAnnotateUnfencedReplyUnchanged(t *testing.T) {
	p := &recordingProvider{reply: "x = 1  # one\n"}
	d := New(&config.Config{}, WithProvider(p))

	got, err := d.Annotate(context.Background(), Request{Filename: "a.py", Code: "x = 1", TargetLang: "English"})
	require.NoError(t, err)
	assert.Equal(t, "x = 1  # one\n", got)
}

func TestAnnotateUsesCustomPrompt(t *testing.T) {
	b, err := prompt.Parse("[{{.Extension}}|{{.TargetLang}}] {{.Code}}")
	require.NoError(t, err)

	p := &recordingProvider{reply: "ok"}
	d := New(&config.Config{}, WithProvider(p), WithPrompt(b))

	_, err = d.Annotate(context.Background(), Request{Filename: "x.rb", Code: "puts 1", TargetLang: "中文"})
	require.NoError(t, err)
	assert.Equal(t, "[rb|中文] puts 1", p.prompt)
}

func TestAnnotateConfigErrorsMakeNoNetworkCall(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.Config
		check func(t *testing.T, err error)
	}{
		{
			name: "unsupported provider",
			cfg:  config.Config{Provider: "claude", Gemini: config.GeminiConfig{APIKey: "k", Endpoint: "http://g.example"}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, config.ErrUnsupportedProvider)
			},
		},
		{
			name: "missing gemini key",
			cfg:  config.Config{Provider: "gemini", Gemini: config.GeminiConfig{Endpoint: "http://g.example"}},
			check: func(t *testing.T, err error) {
				var missing *config.MissingError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, []string{"GEMINI_API_KEY"}, missing.Keys)
			},
		},
		{
			name: "missing deepseek model",
			cfg:  config.Config{Provider: "DEEPSEEK", DeepSeek: config.DeepSeekConfig{APIKey: "k", Endpoint: "http://d.example"}},
			check: func(t *testing.T, err error) {
				var missing *config.MissingError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, config.ProviderDeepSeek, missing.Provider)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &countingTransport{}
			d := New(&tt.cfg, WithClient(&http.Client{Transport: rt}))

			_, err := d.Annotate(context.Background(), Request{Filename: "a.go", Code: "package a", TargetLang: "English"})
			require.Error(t, err)
			tt.check(t, err)
			assert.Zero(t, rt.calls.Load(), "no outbound call expected")
		})
	}
}

func TestAnnotateGeminiEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + "```go\\n// Package a.\\npackage a\\n```" + `"}]}}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Provider:       "Gemini",
		RequestTimeout: 5 * time.Second,
		Gemini:         config.GeminiConfig{APIKey: "g-key", Endpoint: srv.URL},
	}
	d := New(cfg)

	got, err := d.Annotate(context.Background(), Request{Filename: "a.go", Code: "package a", TargetLang: "English"})
	require.NoError(t, err)
	assert.Equal(t, "// Package a.\npackage a", got)
	assert.EqualValues(t, 1, hits.Load())
}

func TestAnnotateDeepSeekEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer d-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","choices":[{"index":0,"message":{"role":"assistant","content":"x := 1 // one"}}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Provider:       "deepseek",
		RequestTimeout: 5 * time.Second,
		DeepSeek:       config.DeepSeekConfig{APIKey: "d-key", Endpoint: srv.URL, Model: "deepseek-chat"},
	}

	got, err := New(cfg).Annotate(context.Background(), Request{Filename: "a.go", Code: "x := 1", TargetLang: "English"})
	require.NoError(t, err)
	assert.Equal(t, "x := 1 // one", got)
}

func TestAnnotatePropagatesProviderError(t *testing.T) {
	perr := &adapter.Error{Kind: adapter.KindStatus, Provider: "recording", StatusCode: 503}
	d := New(&config.Config{}, WithProvider(&recordingProvider{err: perr}))

	_, err := d.Annotate(context.Background(), Request{Filename: "a.go", Code: "x", TargetLang: "English"})
	var got *adapter.Error
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 503, got.StatusCode)
}

func TestProviderName(t *testing.T) {
	assert.Equal(t, "deepseek", New(&config.Config{Provider: "DeepSeek"}).ProviderName())
	assert.Equal(t, "gemini", New(&config.Config{}).ProviderName())
	assert.Equal(t, "mock", New(&config.Config{}, WithProvider(&adapter.MockAdapter{})).ProviderName())
}

func TestRedact(t *testing.T) {
	d := New(&config.Config{DeepSeek: config.DeepSeekConfig{APIKey: "sk-live"}})
	got := d.Redact("auth failed for sk-live")
	assert.False(t, strings.Contains(got, "sk-live"))
}
