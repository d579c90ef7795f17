// Package dispatch turns an uploaded source file into commented code by
// rendering the prompt, picking the configured provider and cleaning its reply.
package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/adapter"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/metrics"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/prompt"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/sanitize"
)

// Request is one file to annotate.
type Request struct {
	Filename   string
	Code       string
	TargetLang string
}

// Dispatcher routes prompts to the provider selected by configuration.
type Dispatcher struct {
	cfg     *config.Config
	client  *http.Client
	prompts *prompt.Builder
	static  adapter.Provider
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithPrompt overrides the embedded prompt template.
func WithPrompt(b *prompt.Builder) Option {
	return func(d *Dispatcher) { d.prompts = b }
}

// WithProvider pins every request to p and bypasses provider configuration.
func WithProvider(p adapter.Provider) Option {
	return func(d *Dispatcher) { d.static = p }
}

// WithClient sets the HTTP client used for provider calls.
func WithClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// New returns a Dispatcher reading provider settings from cfg. cfg is not
// modified and may be shared.
func New(cfg *config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{cfg: cfg, prompts: prompt.Default()}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return d
}

// ProviderName is the name reported for the selected provider, even when it
// is not fully configured.
func (d *Dispatcher) ProviderName() string {
	if d.static != nil {
		return d.static.Name()
	}
	return string(d.cfg.ProviderKind())
}

// Resolve builds the provider for the current configuration. It fails with
// a *config.MissingError or config.ErrUnsupportedProvider without touching
// the network.
func (d *Dispatcher) Resolve() (adapter.Provider, error) {
	if d.static != nil {
		return d.static, nil
	}
	settings, err := d.cfg.ProviderSettings()
	if err != nil {
		return nil, err
	}
	return adapter.New(settings, d.client)
}

// Annotate sends req to the provider and returns the commented code with any
// surrounding markdown fence removed. Exactly one provider call is made.
func (d *Dispatcher) Annotate(ctx context.Context, req Request) (string, error) {
	text, err := d.prompts.Build(prompt.Input{
		Code:       req.Code,
		Extension:  prompt.Extension(req.Filename),
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return "", err
	}

	p, err := d.Resolve()
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := p.Comment(ctx, text)
	metrics.CommentDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := string(adapter.KindOf(err))
		if kind == "" {
			kind = "other"
		}
		metrics.ProviderErrors.WithLabelValues(p.Name(), kind).Inc()
		return "", fmt.Errorf("dispatch: %w", err)
	}

	log.Debug().
		Str("provider", p.Name()).
		Str("file", req.Filename).
		Dur("elapsed", time.Since(start)).
		Int("reply_bytes", len(reply)).
		Msg("provider replied")

	return sanitize.StripFence(reply), nil
}

// Redact scrubs configured credentials from s before it leaves the process.
func (d *Dispatcher) Redact(s string) string {
	return d.cfg.Redact(s)
}
