package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

const unknownBlockReason = "unknown reason"

// GeminiAdapter calls a Gemini generateContent endpoint. The API key travels
// as the "key" query parameter.
type GeminiAdapter struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate    `json:"candidates"`
	PromptFeedback geminiPromptFeedback `json:"promptFeedback"`
}

func (g *GeminiAdapter) Name() string {
	return "gemini"
}

func (g *GeminiAdapter) Comment(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	u, err := url.Parse(g.Endpoint)
	if err != nil {
		return "", fmt.Errorf("gemini: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", g.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		// url.Error embeds the full URL, key included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = g.Endpoint
		}
		return "", transportError(g.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().
			Str("provider", g.Name()).
			Int("status", resp.StatusCode).
			Str("body", string(detail)).
			Msg("provider returned error status")
		return "", &Error{Kind: KindStatus, Provider: g.Name(), StatusCode: resp.StatusCode}
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		if isTimeout(err) {
			return "", transportError(g.Name(), err)
		}
		return "", &Error{Kind: KindMalformed, Provider: g.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(genResp.Candidates) == 0 {
		reason := genResp.PromptFeedback.BlockReason
		if reason == "" {
			reason = unknownBlockReason
		}
		return "", &Error{Kind: KindRejected, Provider: g.Name(), Reason: reason}
	}

	parts := genResp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", &Error{Kind: KindMalformed, Provider: g.Name(), Err: errors.New("candidate has no content parts")}
	}
	return parts[0].Text, nil
}
