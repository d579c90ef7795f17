package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
)

// Provider submits a prompt to an LLM backend and returns the raw reply text.
// Failures after the request is sent are reported as *Error.
type Provider interface {
	Name() string
	Comment(ctx context.Context, prompt string) (string, error)
}

// New builds the adapter for the given settings. client carries the
// per-call timeout; a nil client uses http.DefaultClient.
func New(s config.ProviderSettings, client *http.Client) (Provider, error) {
	if client == nil {
		client = http.DefaultClient
	}
	switch s := s.(type) {
	case config.Gemini:
		return &GeminiAdapter{
			Endpoint: s.Endpoint(),
			APIKey:   s.APIKey(),
			Client:   client,
		}, nil
	case config.DeepSeek:
		return NewDeepSeekAdapter(s.Endpoint(), s.APIKey(), s.Model(), client), nil
	default:
		return nil, fmt.Errorf("adapter: %w: %T", config.ErrUnsupportedProvider, s)
	}
}
