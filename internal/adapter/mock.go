package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockAdapter returns simulated responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "mock" }

// Comment echoes the code block found in the prompt back inside a fence,
// prefixed with a single comment line, the way a real model answers.
func (m *MockAdapter) Comment(ctx context.Context, prompt string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	ext, code := lastCodeBlock(prompt)
	return "```" + ext + "\n// commented by mock\n" + code + "\n```", nil
}

// lastCodeBlock returns the tag and body of the last fenced block in s,
// or the whole of s when it holds no complete block.
func lastCodeBlock(s string) (tag, body string) {
	end := strings.LastIndex(s, "\n```")
	if end < 0 {
		return "", s
	}
	start := strings.LastIndex(s[:end], "```")
	if start < 0 {
		return "", s
	}
	block := s[start+3 : end]
	tag, body, found := strings.Cut(block, "\n")
	if !found {
		return "", block
	}
	return tag, body
}
