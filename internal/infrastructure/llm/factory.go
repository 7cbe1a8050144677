package llm

import (
	"context"
	"fmt"
	"time"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/infrastructure/llm/gemini"
	"redcalibur/internal/infrastructure/llm/ollama"
	"redcalibur/internal/infrastructure/llm/openrouter"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"

	systemPrompt = "You are an expert penetration tester assisting an authorized security assessment. " +
		"Answer concisely and stay within the requested structure."
)

type Config struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// New builds the reasoning backend named by cfg.Provider. It returns a nil
// port, and no error, when reasoning is not configured: an empty provider, or
// a hosted provider without an API key.
func New(ctx context.Context, cfg Config, logger output.LoggerPort) (output.ReasoningPort, error) {
	logger = logger.WithField("component", "llm")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	switch cfg.Provider {
	case "":
		logger.Info("Reasoning provider not configured, agents use fallback analysis")
		return nil, nil

	case ProviderGemini:
		if cfg.APIKey == "" {
			logger.Warn("Gemini API key missing, agents use fallback analysis")
			return nil, nil
		}
		adapter, err := gemini.NewGeminiAdapter(ctx, gemini.Config{
			APIKey:       cfg.APIKey,
			Model:        cfg.Model,
			BaseURL:      cfg.BaseURL,
			SystemPrompt: systemPrompt,
			Temperature:  float32(cfg.Temperature),
			Timeout:      timeout,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		return adapter, nil

	case ProviderOpenRouter:
		if cfg.APIKey == "" {
			logger.Warn("OpenRouter API key missing, agents use fallback analysis")
			return nil, nil
		}
		orCfg := openrouter.DefaultConfig(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			orCfg.BaseURL = cfg.BaseURL
		}
		orCfg.SystemPrompt = systemPrompt
		orCfg.Temperature = float32(cfg.Temperature)
		orCfg.Timeout = timeout
		orCfg.Logger = logger
		return openrouter.NewOpenRouterAdapter(orCfg), nil

	case ProviderOllama:
		adapter, err := ollama.NewOllamaAdapter(ollama.Config{
			ServerURL:    cfg.BaseURL,
			Model:        cfg.Model,
			SystemPrompt: systemPrompt,
			Temperature:  cfg.Temperature,
			Timeout:      timeout,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		return adapter, nil

	default:
		return nil, fmt.Errorf("unknown reasoning provider %q", cfg.Provider)
	}
}
