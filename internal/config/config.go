package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port              int           `yaml:"port"`
	AllowedOrigin     string        `yaml:"allowed_origin"`
	DefaultTargetLang string        `yaml:"default_target_lang"`
	PromptPath        string        `yaml:"prompt_path"`
	MaxUploadBytes    int64         `yaml:"max_upload_bytes"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	LogLevel          string        `yaml:"log_level"`

	Provider string         `yaml:"provider"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
}

// GeminiConfig is the raw Gemini section. Use ProviderSettings to obtain a validated value.
type GeminiConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// DeepSeekConfig is the raw DeepSeek section.
type DeepSeekConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

func defaults() Config {
	return Config{
		Port:              5001,
		AllowedOrigin:     "http://localhost:3000",
		DefaultTargetLang: "Chinese",
		MaxUploadBytes:    2 << 20,
		RequestTimeout:    120 * time.Second,
		LogLevel:          "info",
		Provider:          string(ProviderGemini),
	}
}

// Load loads configuration from a YAML file (if path is non-empty), fills
// unset fields with defaults, then applies environment variable overrides.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, defaults()); err != nil {
		return Config{}, fmt.Errorf("config: apply defaults: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CODECOMMENT_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CODECOMMENT_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("CODECOMMENT_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid CODECOMMENT_MAX_UPLOAD_BYTES %q: %w", v, err)
		}
		cfg.MaxUploadBytes = n
	}
	if v := os.Getenv("CODECOMMENT_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid CODECOMMENT_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}

	// LLM_API_KEY / LLM_API_ENDPOINT are the older single-provider names and only feed Gemini.
	strOverrides := []struct {
		dst  *string
		envs []string
	}{
		{&cfg.AllowedOrigin, []string{"CODECOMMENT_ALLOWED_ORIGIN"}},
		{&cfg.DefaultTargetLang, []string{"CODECOMMENT_DEFAULT_TARGET_LANG"}},
		{&cfg.PromptPath, []string{"CODECOMMENT_PROMPT_PATH"}},
		{&cfg.LogLevel, []string{"LOG_LEVEL"}},
		{&cfg.Provider, []string{"LLM_PROVIDER"}},
		{&cfg.Gemini.APIKey, []string{"GEMINI_API_KEY", "LLM_API_KEY"}},
		{&cfg.Gemini.Endpoint, []string{"GEMINI_API_ENDPOINT", "LLM_API_ENDPOINT"}},
		{&cfg.DeepSeek.APIKey, []string{"DEEPSEEK_API_KEY"}},
		{&cfg.DeepSeek.Endpoint, []string{"DEEPSEEK_API_ENDPOINT"}},
		{&cfg.DeepSeek.Model, []string{"DEEPSEEK_MODEL"}},
	}
	for _, o := range strOverrides {
		for _, env := range o.envs {
			if v := os.Getenv(env); v != "" {
				*o.dst = v
				break
			}
		}
	}
	return nil
}
