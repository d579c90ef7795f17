package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/adapter"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/dispatch"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/logger"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/prompt"
)

var (
	cfgPath string
	envFile string
	useMock bool
	pretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "codecomment",
	Short: "Annotate source code with LLM-written comments",
	Long:  "codecomment sends source files to Gemini or DeepSeek and returns the code with explanatory comments in the language you ask for.",
	// Bare `codecomment` runs the HTTP API.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml (default: CODECOMMENT_CONFIG env var, else built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the mock provider instead of a real LLM")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable console logs")
}

// setup loads .env, configuration and logging, in that order.
func setup() (*config.Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	path := cfgPath
	if path == "" {
		path = os.Getenv("CODECOMMENT_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.LogLevel, pretty)
	log.Debug().Str("config", path).Str("provider", string(cfg.ProviderKind())).Msg("config loaded")
	return &cfg, nil
}

// loadDotEnv loads path into the environment. A missing file is not an error
// and variables already set win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func buildDispatcher(cfg *config.Config) (*dispatch.Dispatcher, error) {
	opts := []dispatch.Option{}

	if cfg.PromptPath != "" {
		b, err := prompt.Load(cfg.PromptPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithPrompt(b))
		log.Info().Str("path", cfg.PromptPath).Msg("prompt template loaded")
	}

	if useMock {
		opts = append(opts, dispatch.WithProvider(&adapter.MockAdapter{Delay: 500 * time.Millisecond}))
		log.Info().Msg("mode: mock provider enabled")
	}

	return dispatch.New(cfg, opts...), nil
}
