// Package prompt renders the instruction sent to the LLM for a single source file.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"
	"text/template"
)

//go:embed default.tmpl
var defaultTemplate string

var std = &Builder{tmpl: template.Must(template.New("default").Parse(defaultTemplate))}

// Input is everything a prompt depends on.
type Input struct {
	Code       string
	Extension  string
	TargetLang string
}

// Builder renders prompts from a text/template.
type Builder struct {
	tmpl *template.Template
}

// Default returns the Builder for the embedded template.
func Default() *Builder {
	return std
}

// Load reads a custom template from path. An empty path yields Default().
func Load(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse compiles text as a prompt template.
func Parse(text string) (*Builder, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("prompt: parse template: %w", err)
	}
	b := &Builder{tmpl: tmpl}
	// Fail at load time rather than on the first request.
	if _, err := b.render(Input{}); err != nil {
		return nil, err
	}
	return b, nil
}

// Build renders the prompt. The result is a pure function of in.
func (b *Builder) Build(in Input) (string, error) {
	return b.render(in)
}

func (b *Builder) render(in Input) (string, error) {
	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, in); err != nil {
		return "", fmt.Errorf("prompt: render: %w", err)
	}
	return sb.String(), nil
}

// Build renders in with the embedded template, which cannot fail to execute.
func Build(in Input) string {
	s, _ := Default().Build(in)
	return s
}

// Extension returns the text after the last dot of the file's base name,
// or the whole base name when it has no dot.
func Extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[i+1:]
	}
	return base
}
