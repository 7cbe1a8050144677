package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/infrastructure/llm"
	"redcalibur/internal/infrastructure/logger"
)

const EnvPrefix = "REDCALIBUR"

type Config struct {
	Logger    logger.Config  `mapstructure:"logger"`
	Reasoning llm.Config     `mapstructure:"reasoning"`
	Tools     ToolsConfig    `mapstructure:"tools"`
	Workflow  WorkflowConfig `mapstructure:"workflow"`
	Server    ServerConfig   `mapstructure:"server"`
}

type ToolsConfig struct {
	RequestDelay time.Duration `mapstructure:"request_delay"`
	Burst        int           `mapstructure:"burst"`
}

type WorkflowConfig struct {
	MaxIterations  int  `mapstructure:"max_iterations"`
	FollowHandoffs bool `mapstructure:"follow_handoffs"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// provider API keys read from the plain environment when reasoning.api_key is unset
var apiKeyEnv = map[string]string{
	llm.ProviderGemini:     "GEMINI_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 14)

	v.SetDefault("reasoning.provider", "")
	v.SetDefault("reasoning.api_key", "")
	v.SetDefault("reasoning.model", "")
	v.SetDefault("reasoning.base_url", "")
	v.SetDefault("reasoning.temperature", 0.2)
	v.SetDefault("reasoning.timeout", "60s")

	v.SetDefault("tools.request_delay", "1s")
	v.SetDefault("tools.burst", 1)

	v.SetDefault("workflow.max_iterations", 10)
	v.SetDefault("workflow.follow_handoffs", false)

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")
}

// Load reads path (or ./config.yaml when path is empty and the file exists),
// then REDCALIBUR_* environment overrides. env supplies provider API key
// fallbacks.
func Load(path string, env output.ConfigPort) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Reasoning.APIKey == "" && env != nil {
		if key, ok := apiKeyEnv[cfg.Reasoning.Provider]; ok {
			cfg.Reasoning.APIKey = env.Get(key)
		}
	}
	if cfg.Reasoning.Model == "" && cfg.Reasoning.Provider == llm.ProviderOpenRouter && env != nil {
		cfg.Reasoning.Model = env.Get("OPENROUTER_MODEL_NAME")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Reasoning.Provider {
	case "", llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderOllama:
	default:
		return fmt.Errorf("reasoning.provider: unknown provider %q", c.Reasoning.Provider)
	}
	if c.Reasoning.Temperature < 0 || c.Reasoning.Temperature > 2 {
		return fmt.Errorf("reasoning.temperature: %.2f out of range [0, 2]", c.Reasoning.Temperature)
	}
	if c.Tools.RequestDelay < 0 {
		return fmt.Errorf("tools.request_delay: must not be negative")
	}
	if c.Tools.Burst < 0 {
		return fmt.Errorf("tools.burst: must not be negative")
	}
	if c.Workflow.MaxIterations < 0 {
		return fmt.Errorf("workflow.max_iterations: must not be negative")
	}
	return nil
}
