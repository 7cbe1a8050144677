package usecase

import (
	"context"
	"fmt"
	"maps"
	"time"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

var _ input.AgentExecutor = (*ExecuteAgentUseCase)(nil)

// ExecuteAgentUseCase runs one named agent on a fresh context built from the
// caller's payload. Runs are not recorded in workflow history.
type ExecuteAgentUseCase struct {
	agents output.AgentRegistry
	logger output.LoggerPort
	now    func() time.Time
}

func NewExecuteAgentUseCase(agents output.AgentRegistry, logger output.LoggerPort) *ExecuteAgentUseCase {
	return &ExecuteAgentUseCase{
		agents: agents,
		logger: logger.WithField("component", "execute_agent"),
		now:    time.Now,
	}
}

func (uc *ExecuteAgentUseCase) Execute(ctx context.Context, req input.AgentRequest) (*input.AgentResponse, error) {
	agent, ok := uc.agents.Get(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrAgentNotFound, req.Role)
	}

	seed := maps.Clone(req.Payload)
	if seed == nil {
		seed = make(map[string]any, 1)
	}
	if _, ok := seed[entity.KeyReportDate]; !ok {
		seed[entity.KeyReportDate] = uc.now().Format("2006-01-02")
	}

	uc.logger.Info("Executing single agent", "agent", agent.Name(), "payload_keys", len(req.Payload))

	result, err := agent.Execute(ctx, entity.NewWorkflowContext(seed))
	resp := &input.AgentResponse{
		Role:   req.Role,
		Result: result,
		State:  agent.State(),
	}
	if err != nil {
		uc.logger.Warn("Single agent execution failed", "agent", agent.Name(), "error", err)
		return resp, err
	}

	if last, ok := agent.LastEntry(); ok {
		resp.Thought = &last.Thought
		resp.Action = &last.Action
	}
	return resp, nil
}
