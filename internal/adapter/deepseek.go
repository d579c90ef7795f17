package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const chatCompletionsSuffix = "/chat/completions"

// DeepSeekAdapter talks to an OpenAI-compatible chat-completion endpoint
// (DeepSeek by default) through go-openai.
type DeepSeekAdapter struct {
	Model  string
	client *openai.Client
}

// NewDeepSeekAdapter accepts either the API base URL or the full
// chat/completions URL as endpoint.
func NewDeepSeekAdapter(endpoint, apiKey, model string, httpClient *http.Client) *DeepSeekAdapter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(strings.TrimRight(endpoint, "/"), chatCompletionsSuffix)
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &DeepSeekAdapter{
		Model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (d *DeepSeekAdapter) Name() string {
	return "deepseek"
}

func (d *DeepSeekAdapter) Comment(ctx context.Context, prompt string) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", d.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformed, Provider: d.Name(), Err: errors.New("empty response choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (d *DeepSeekAdapter) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		log.Error().
			Str("provider", d.Name()).
			Int("status", apiErr.HTTPStatusCode).
			Str("body", apiErr.Message).
			Msg("provider returned error status")
		return &Error{Kind: KindStatus, Provider: d.Name(), StatusCode: apiErr.HTTPStatusCode}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		log.Error().
			Str("provider", d.Name()).
			Int("status", reqErr.HTTPStatusCode).
			AnErr("cause", reqErr.Err).
			Msg("provider returned error status")
		return &Error{Kind: KindStatus, Provider: d.Name(), StatusCode: reqErr.HTTPStatusCode}
	}

	if isTimeout(err) {
		return transportError(d.Name(), err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Kind: KindMalformed, Provider: d.Name(), Err: err}
	}

	return transportError(d.Name(), err)
}
