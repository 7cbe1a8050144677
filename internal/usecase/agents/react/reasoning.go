package react

import (
	"context"
	"fmt"
	"strings"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
)

// Reasoning wraps the optional reasoning backend. A nil *Reasoning, or one
// built from a nil port, always renders the fallback analysis.
type Reasoning struct {
	port   output.ReasoningPort
	logger output.LoggerPort
}

func NewReasoning(port output.ReasoningPort, logger output.LoggerPort) *Reasoning {
	return &Reasoning{
		port:   port,
		logger: logger.WithField("component", "reasoning"),
	}
}

func (r *Reasoning) Enabled() bool {
	return r != nil && r.port != nil
}

func (r *Reasoning) Model() string {
	if !r.Enabled() {
		return ""
	}
	return r.port.Model()
}

// Analyze produces analysis text for tmpl. Backend errors and empty answers
// are logged and replaced by the rendered fallback.
func (r *Reasoning) Analyze(ctx context.Context, tmpl prompts.Template, data any) (string, error) {
	if r.Enabled() {
		prompt, err := tmpl.RenderPrompt(data)
		if err != nil {
			return "", fmt.Errorf("render %s prompt: %w", tmpl.Name, err)
		}

		text, err := r.port.Generate(ctx, prompt)
		switch {
		case err != nil:
			cause := entity.NewAgentError(entity.ErrKindReasoningUnavailable, tmpl.Name, "generate analysis", err)
			r.logger.Warn("Reasoning unavailable, using fallback", "template", tmpl.Name, "error", cause)
		case strings.TrimSpace(text) == "":
			r.logger.Warn("Reasoning returned empty analysis, using fallback", "template", tmpl.Name)
		default:
			return strings.TrimSpace(text), nil
		}
	}

	text, err := tmpl.RenderFallback(data)
	if err != nil {
		return "", fmt.Errorf("render %s fallback: %w", tmpl.Name, err)
	}
	return text, nil
}
