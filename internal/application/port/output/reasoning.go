package output

import "context"

// ReasoningPort turns a prompt into analysis text. A nil ReasoningPort means
// reasoning is not configured.
type ReasoningPort interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}
