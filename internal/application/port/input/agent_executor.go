package input

import (
	"context"

	"redcalibur/internal/domain/entity"
)

type AgentRequest struct {
	Role    entity.AgentRole
	Payload map[string]any
}

type AgentResponse struct {
	Role    entity.AgentRole     `json:"role"`
	Result  *entity.Result       `json:"result"`
	Thought *entity.AgentThought `json:"thought,omitempty"`
	Action  *entity.AgentAction  `json:"action,omitempty"`
	State   entity.AgentState    `json:"state"`
}

type AgentExecutor interface {
	Execute(ctx context.Context, req AgentRequest) (*AgentResponse, error)
}
