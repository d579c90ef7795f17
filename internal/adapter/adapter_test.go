package adapter

import (
	"net/http"
	"testing"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
)

func TestNewSelectsAdapterBySettings(t *testing.T) {
	gem, err := config.NewGemini("k", "https://g.example/generate")
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}
	ds, err := config.NewDeepSeek("k", "https://api.deepseek.com", "deepseek-chat")
	if err != nil {
		t.Fatalf("NewDeepSeek: %v", err)
	}

	tests := []struct {
		name     string
		settings config.ProviderSettings
		want     string
	}{
		{"gemini", gem, "gemini"},
		{"deepseek", ds, "deepseek"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.settings, &http.Client{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("got %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestNewNilSettings(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil settings, got nil")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindStatus, Provider: "gemini", StatusCode: 503}, "gemini: unexpected status 503"},
		{&Error{Kind: KindRejected, Provider: "gemini", Reason: "SAFETY"}, "gemini: request rejected: SAFETY"},
		{&Error{Kind: KindTimeout, Provider: "deepseek"}, "deepseek: request timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
