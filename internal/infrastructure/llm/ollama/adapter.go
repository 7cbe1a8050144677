package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"redcalibur/internal/application/port/output"
)

const (
	DefaultServerURL = "http://localhost:11434"
	DefaultModel     = "llama3"
)

var _ output.ReasoningPort = (*OllamaAdapter)(nil)

type Config struct {
	ServerURL    string
	Model        string
	SystemPrompt string
	Temperature  float64
	Timeout      time.Duration
	Logger       output.LoggerPort
}

// OllamaAdapter reasons with a local model served by Ollama.
type OllamaAdapter struct {
	client       *ollama.LLM
	model        string
	systemPrompt string
	temperature  float64
	logger       output.LoggerPort
}

func NewOllamaAdapter(cfg Config) (*OllamaAdapter, error) {
	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &OllamaAdapter{
		client:       client,
		model:        model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		logger:       cfg.Logger,
	}, nil
}

func (a *OllamaAdapter) Model() string {
	return a.model
}

func (a *OllamaAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if a.systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := a.client.GenerateContent(ctx, messages, llms.WithTemperature(a.temperature))
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if a.logger != nil {
		a.logger.Debug("Ollama response received", "model", a.model, "textChars", len(text))
	}
	return text, nil
}
