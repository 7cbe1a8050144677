package output

import (
	"context"

	"redcalibur/internal/domain/entity"
)

type Agent interface {
	Role() entity.AgentRole
	Name() string
	Description() string
	Capabilities() []entity.ToolName
	State() entity.AgentState
	AIEnabled() bool

	Execute(ctx context.Context, wctx *entity.WorkflowContext) (*entity.Result, error)

	Memory() []entity.MemoryEntry
	MemoryLen() int
	LastEntry() (entity.MemoryEntry, bool)
	MemorySummary() string
	ClearMemory()
}

type AgentRegistry interface {
	Register(agent Agent)
	Get(role entity.AgentRole) (Agent, bool)
	List() []Agent
}
