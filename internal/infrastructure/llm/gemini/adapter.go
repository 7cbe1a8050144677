package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"redcalibur/internal/application/port/output"
)

const DefaultModel = "gemini-2.0-flash"

var _ output.ReasoningPort = (*GeminiAdapter)(nil)

// Config for the Gemini adapter. An empty BaseURL uses the SDK endpoint.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	Temperature  float32
	Timeout      time.Duration
	Logger       output.LoggerPort
}

type GeminiAdapter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
	logger output.LoggerPort
}

func NewGeminiAdapter(ctx context.Context, cfg Config) (*GeminiAdapter, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}
	if cfg.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(cfg.SystemPrompt, genai.RoleUser)
	}

	return &GeminiAdapter{
		client: client,
		model:  model,
		config: genCfg,
		logger: cfg.Logger,
	}, nil
}

func (a *GeminiAdapter) Model() string {
	return a.model
}

func (a *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), a.config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	text := strings.TrimSpace(resp.Text())
	if a.logger != nil {
		a.logger.Debug("Gemini response received", "model", a.model, "promptChars", len(prompt), "textChars", len(text))
	}
	return text, nil
}
