package output

import (
	"context"

	"redcalibur/internal/domain/entity"
)

type WorkflowObserver interface {
	StageStarted(ctx context.Context, event entity.StageEvent)
	StageCompleted(ctx context.Context, event entity.StageEvent)
}

type TransitionObserver interface {
	Transition(agent string, from, to entity.AgentState)
}
