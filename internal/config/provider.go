package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ProviderKind is the discriminator selecting an LLM backend.
type ProviderKind string

const (
	ProviderGemini   ProviderKind = "gemini"
	ProviderDeepSeek ProviderKind = "deepseek"
)

// ErrUnsupportedProvider is returned when the discriminator names no known backend.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// MissingError reports required settings that are empty for the selected provider.
type MissingError struct {
	Provider ProviderKind
	Keys     []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Provider, strings.Join(e.Keys, ", "))
}

// ProviderSettings is the validated, provider-specific configuration.
// The only implementations are Gemini and DeepSeek.
type ProviderSettings interface {
	Kind() ProviderKind
	sealed()
}

// Gemini holds the settings required by the Gemini generateContent API.
type Gemini struct {
	apiKey   string
	endpoint string
}

// NewGemini returns Gemini settings, or a *MissingError if any value is empty.
func NewGemini(apiKey, endpoint string) (Gemini, error) {
	var missing []string
	if apiKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if endpoint == "" {
		missing = append(missing, "GEMINI_API_ENDPOINT")
	}
	if len(missing) > 0 {
		return Gemini{}, &MissingError{Provider: ProviderGemini, Keys: missing}
	}
	return Gemini{apiKey: apiKey, endpoint: endpoint}, nil
}

func (g Gemini) Kind() ProviderKind { return ProviderGemini }
func (g Gemini) APIKey() string { return g.apiKey }
func (g Gemini) Endpoint() string { return g.endpoint }
func (Gemini) sealed() {}

// DeepSeek holds the settings required by a chat-completion style API.
type DeepSeek struct {
	apiKey   string
	endpoint string
	model    string
}

// NewDeepSeek returns DeepSeek settings, or a *MissingError if any value is empty.
func NewDeepSeek(apiKey, endpoint, model string) (DeepSeek, error) {
	var missing []string
	if apiKey == "" {
		missing = append(missing, "DEEPSEEK_API_KEY")
	}
	if endpoint == "" {
		missing = append(missing, "DEEPSEEK_API_ENDPOINT")
	}
	if model == "" {
		missing = append(missing, "DEEPSEEK_MODEL")
	}
	if len(missing) > 0 {
		return DeepSeek{}, &MissingError{Provider: ProviderDeepSeek, Keys: missing}
	}
	return DeepSeek{apiKey: apiKey, endpoint: endpoint, model: model}, nil
}

func (d DeepSeek) Kind() ProviderKind { return ProviderDeepSeek }
func (d DeepSeek) APIKey() string { return d.apiKey }
func (d DeepSeek) Endpoint() string { return d.endpoint }
func (d DeepSeek) Model() string { return d.model }
func (DeepSeek) sealed() {}

// ProviderKind returns the normalized discriminator, defaulting to gemini.
func (c *Config) ProviderKind() ProviderKind {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		return ProviderGemini
	}
	return ProviderKind(p)
}

// ProviderSettings resolves the discriminator into validated settings.
// It never touches the network.
func (c *Config) ProviderSettings() (ProviderSettings, error) {
	switch kind := c.ProviderKind(); kind {
	case ProviderGemini:
		return NewGemini(c.Gemini.APIKey, c.Gemini.Endpoint)
	case ProviderDeepSeek:
		return NewDeepSeek(c.DeepSeek.APIKey, c.DeepSeek.Endpoint, c.DeepSeek.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(kind))
	}
}

// Redact replaces every configured credential found in s.
func (c *Config) Redact(s string) string {
	secrets := lo.Uniq(lo.Compact([]string{c.Gemini.APIKey, c.DeepSeek.APIKey}))
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
