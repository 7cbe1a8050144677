package output

import (
	"context"

	"redcalibur/internal/domain/entity"
)

// ToolPort is one tool capability.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Invoke(ctx context.Context, params entity.Params, wctx entity.ContextView) (*entity.ToolResult, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
}

// ToolExecutor runs the action an agent selected.
type ToolExecutor interface {
	Invoke(ctx context.Context, action entity.AgentAction, wctx entity.ContextView) (*entity.ToolResult, error)
}
