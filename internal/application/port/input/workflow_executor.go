package input

import (
	"context"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

type WorkflowRequest struct {
	Objective     string
	Target        string
	MaxIterations int
	// Observer receives stage events for this run only, in addition to the
	// executor's own observers.
	Observer output.WorkflowObserver
}

type WorkflowResult struct {
	RunID       string                         `json:"run_id"`
	Objective   string                         `json:"objective"`
	Target      string                         `json:"target"`
	Success     bool                           `json:"success"`
	Iterations  int                            `json:"iterations"`
	History     []entity.ExecutionHistoryEntry `json:"history"`
	FailedAgent string                         `json:"failed_agent,omitempty"`
}

type WorkflowExecutor interface {
	ExecuteWorkflow(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	Summary() string
	AgentInfo(role entity.AgentRole) (entity.AgentInfo, error)
	Agents() []entity.AgentInfo
	ListAgents() []entity.AgentRole
	History() []entity.ExecutionHistoryEntry
	ClearHistory()
}
