package react

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

// Strategy is the role-specific part of an agent.
type Strategy interface {
	Role() entity.AgentRole
	Name() string
	Description() string
	Capabilities() []entity.ToolName

	// Think reads the context and must not modify it.
	Think(ctx context.Context, r *Reasoning, view entity.ContextView) (entity.AgentThought, error)
	// Act picks exactly one tool for the thought. It performs no I/O.
	Act(thought entity.AgentThought) (entity.AgentAction, error)
}

type Deps struct {
	Reasoning *Reasoning
	Tools     output.ToolExecutor
	Logger    output.LoggerPort
}

type Option func(*Agent)

func WithTransitionObserver(obs output.TransitionObserver) Option {
	return func(a *Agent) {
		a.observer = obs
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

var _ output.Agent = (*Agent)(nil)

// Agent drives one Strategy through the think/act cycle and keeps its memory.
// It is not safe for concurrent use.
type Agent struct {
	strategy  Strategy
	reasoning *Reasoning
	tools     output.ToolExecutor
	logger    output.LoggerPort
	observer  output.TransitionObserver
	now       func() time.Time

	state  entity.AgentState
	memory []entity.MemoryEntry
}

func New(strategy Strategy, deps Deps, opts ...Option) *Agent {
	a := &Agent{
		strategy:  strategy,
		reasoning: deps.Reasoning,
		tools:     deps.Tools,
		logger:    deps.Logger.WithField("agent", strategy.Name()),
		now:       time.Now,
		state:     entity.AgentStateIdle,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) Role() entity.AgentRole {
	return a.strategy.Role()
}

func (a *Agent) Name() string {
	return a.strategy.Name()
}

func (a *Agent) Description() string {
	return a.strategy.Description()
}

func (a *Agent) Capabilities() []entity.ToolName {
	return slices.Clone(a.strategy.Capabilities())
}

func (a *Agent) State() entity.AgentState {
	return a.state
}

func (a *Agent) AIEnabled() bool {
	return a.reasoning.Enabled()
}

// Execute runs one think/act cycle against wctx. Memory grows by one entry on
// success only. Failures leave the agent in the error state and are returned
// both as a failed Result and as an *entity.AgentError.
func (a *Agent) Execute(ctx context.Context, wctx *entity.WorkflowContext) (result *entity.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Agent panicked", "panic", r)
			result, err = a.fail(entity.ErrKindContractViolation, "panic during execution", fmt.Errorf("%v", r))
		}
	}()

	if wctx == nil {
		return a.fail(entity.ErrKindContractViolation, "nil workflow context", nil)
	}

	if err := a.transition(entity.AgentStateThinking); err != nil {
		return a.fail(entity.ErrKindContractViolation, "start thinking", err)
	}

	a.logger.Info("Agent thinking", "ai_enabled", a.AIEnabled())
	thought, err := a.strategy.Think(ctx, a.reasoning, wctx)
	if err != nil {
		return a.fail(entity.ErrKindContractViolation, "think", err)
	}
	if err := thought.Validate(); err != nil {
		return a.fail(entity.ErrKindContractViolation, "invalid thought", err)
	}

	if err := a.transition(entity.AgentStateActing); err != nil {
		return a.fail(entity.ErrKindContractViolation, "start acting", err)
	}

	action, err := a.strategy.Act(thought)
	if err != nil {
		return a.fail(entity.ErrKindContractViolation, "act", err)
	}
	if !slices.Contains(a.strategy.Capabilities(), action.Tool) {
		return a.fail(entity.ErrKindContractViolation, "select tool",
			fmt.Errorf("tool %q is not one of the agent's capabilities", action.Tool))
	}

	a.logger.Info("Agent acting", "tool", action.Tool, "confidence", thought.Confidence)
	toolResult, err := a.tools.Invoke(ctx, action, wctx)
	if err != nil {
		return a.fail(entity.ErrKindToolExecution, fmt.Sprintf("invoke %s", action.Tool), err)
	}
	if !toolResult.Success {
		return a.fail(entity.ErrKindToolExecution, fmt.Sprintf("invoke %s", action.Tool), errors.New(toolResult.Message))
	}

	result = &entity.Result{
		Success:    true,
		Agent:      a.Name(),
		Tool:       action.Tool,
		Parameters: action.Parameters.Clone(),
		Reasoning:  action.Reasoning,
		Message:    toolResult.Message,
		RawOutput:  toolResult.RawOutput,
		Simulated:  toolResult.Simulated,
	}
	if thought.Delegate != "" {
		handoff := a.HandoffTo(thought.Delegate, map[string]any{
			"subject": thought.Subject,
			"plan":    thought.Plan,
		})
		result.Handoff = &handoff
	}

	// memory keeps its own copy of the result
	recorded := *result
	recorded.Parameters = result.Parameters.Clone()
	a.memory = append(a.memory, entity.MemoryEntry{
		Thought:    thought,
		Action:     action,
		Result:     &recorded,
		RecordedAt: a.now(),
	})

	if err := a.transition(entity.AgentStateCompleted); err != nil {
		return a.fail(entity.ErrKindContractViolation, "complete", err)
	}

	a.logger.Info("Agent completed", "tool", action.Tool, "memory_entries", len(a.memory))
	return result, nil
}

// HandoffTo builds a request for role to take over after this agent.
func (a *Agent) HandoffTo(role entity.AgentRole, hctx map[string]any) entity.Handoff {
	return entity.Handoff{
		TargetAgent: role,
		Source:      a.Name(),
		Context:     hctx,
		Reason:      fmt.Sprintf("%s recommends %s for the next step", a.Name(), role),
	}
}

func (a *Agent) Memory() []entity.MemoryEntry {
	return slices.Clone(a.memory)
}

func (a *Agent) MemoryLen() int {
	return len(a.memory)
}

func (a *Agent) LastEntry() (entity.MemoryEntry, bool) {
	if len(a.memory) == 0 {
		return entity.MemoryEntry{}, false
	}
	return a.memory[len(a.memory)-1], true
}

func (a *Agent) MemorySummary() string {
	if len(a.memory) == 0 {
		return fmt.Sprintf("%s has no memory yet.", a.Name())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Memory (%d entries):\n", a.Name(), len(a.memory))
	for i, entry := range a.memory {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, entry.Action.Tool, firstLine(entry.Action.Reasoning))
	}
	return b.String()
}

// ClearMemory drops all entries. The state is left as is; a used agent never
// returns to idle.
func (a *Agent) ClearMemory() {
	a.memory = nil
}

func (a *Agent) transition(to entity.AgentState) error {
	if !entity.CanTransition(a.state, to) {
		return entity.ErrInvalidTransition{From: a.state, To: to}
	}
	a.setState(to)
	return nil
}

func (a *Agent) setState(to entity.AgentState) {
	from := a.state
	a.state = to
	if a.observer != nil && from != to {
		a.observer.Transition(a.Name(), from, to)
	}
}

func (a *Agent) fail(kind entity.ErrorKind, message string, cause error) (*entity.Result, error) {
	agentErr := entity.NewAgentError(kind, a.Name(), message, cause)
	a.setState(entity.AgentStateError)
	a.logger.Error("Agent failed", "kind", kind, "error", agentErr)
	return entity.FailedResult(a.Name(), agentErr), agentErr
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
