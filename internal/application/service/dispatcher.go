package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

var _ output.ToolExecutor = (*ToolDispatcher)(nil)

// ToolDispatcher routes an action to the registered tool of the same name,
// pacing invocations with a token bucket.
type ToolDispatcher struct {
	tools   output.ToolRegistry
	limiter *rate.Limiter
	logger  output.LoggerPort
}

type DispatcherConfig struct {
	// RequestDelay is the minimum spacing between tool invocations. Zero disables pacing.
	RequestDelay time.Duration
	Burst        int
}

func NewToolDispatcher(tools output.ToolRegistry, logger output.LoggerPort, cfg DispatcherConfig) *ToolDispatcher {
	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &ToolDispatcher{
		tools:   tools,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.WithField("component", "tool_dispatcher"),
	}
}

func (d *ToolDispatcher) Invoke(ctx context.Context, action entity.AgentAction, wctx entity.ContextView) (*entity.ToolResult, error) {
	tool, ok := d.tools.Get(action.Tool)
	if !ok {
		d.logger.Warn("Unknown tool called", "name", action.Tool)
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownTool, action.Tool)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for tool slot: %w", err)
	}

	d.logger.Info("Executing tool", "name", action.Tool, "params", action.Parameters.Format())

	start := time.Now()
	result, err := tool.Invoke(ctx, action.Parameters, wctx)
	if err != nil {
		d.logger.Error("Tool execution failed", "name", action.Tool, "error", err)
		return nil, fmt.Errorf("tool %s: %w", action.Tool, err)
	}
	if result == nil {
		return nil, fmt.Errorf("tool %s returned no result", action.Tool)
	}

	d.logger.Debug("Tool completed", "name", action.Tool, "success", result.Success, "duration", time.Since(start))
	return result, nil
}
