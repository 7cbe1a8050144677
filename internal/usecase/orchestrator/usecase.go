package orchestrator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
)

const (
	defaultMaxIterations = 10
	reportDateLayout     = "2006-01-02"
)

var _ input.WorkflowExecutor = (*UseCase)(nil)

type Config struct {
	// MaxIterations caps stages per run when the request leaves it unset.
	MaxIterations int
	// FollowHandoffs sequences stages by each result's handoff instead of the fixed order.
	FollowHandoffs bool
}

type Option func(*UseCase)

func WithObserver(obs output.WorkflowObserver) Option {
	return func(uc *UseCase) {
		uc.observers = append(uc.observers, obs)
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

func WithRunIDs(next func() string) Option {
	return func(uc *UseCase) {
		uc.newRunID = next
	}
}

// UseCase runs the four agents over a shared context and keeps the execution
// history across runs. One workflow at a time; callers serialize access.
type UseCase struct {
	agents    output.AgentRegistry
	observers []output.WorkflowObserver
	logger    output.LoggerPort
	cfg       Config
	now       func() time.Time
	newRunID  func() string

	history []entity.ExecutionHistoryEntry
}

func New(agents output.AgentRegistry, logger output.LoggerPort, cfg Config, opts ...Option) *UseCase {
	uc := &UseCase{
		agents:   agents,
		logger:   logger.WithField("component", "orchestrator"),
		cfg:      cfg,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) ExecuteWorkflow(ctx context.Context, req input.WorkflowRequest) (*input.WorkflowResult, error) {
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = uc.cfg.MaxIterations
	}
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	runID := uc.newRunID()
	logger := uc.logger.WithField("run_id", runID)
	logger.Info("Workflow started", "objective", req.Objective, "target", req.Target, "max_iterations", maxIterations)

	wctx := entity.NewWorkflowContext(map[string]any{
		entity.KeyObjective:  req.Objective,
		entity.KeyTarget:     req.Target,
		entity.KeyRunID:      runID,
		entity.KeyReportDate: uc.now().Format(reportDateLayout),
	})

	observers := uc.observers
	if req.Observer != nil {
		observers = append(slices.Clone(observers), req.Observer)
	}

	res := &input.WorkflowResult{
		RunID:     runID,
		Objective: req.Objective,
		Target:    req.Target,
		Success:   true,
	}

	visited := make(map[entity.AgentRole]bool, len(entity.WorkflowOrder))
	role := entity.WorkflowOrder[0]

	for iteration := 1; iteration <= maxIterations; iteration++ {
		agent, ok := uc.agents.Get(role)
		if !ok {
			return res, fmt.Errorf("%w: %s", entity.ErrAgentNotFound, role)
		}
		visited[role] = true

		started := uc.now()
		notify(observers, func(o output.WorkflowObserver) {
			o.StageStarted(ctx, entity.StageEvent{
				RunID:     runID,
				Iteration: iteration,
				Role:      role,
				Agent:     agent.Name(),
				Status:    entity.StageStatusRunning,
				State:     agent.State(),
				Timestamp: started,
			})
		})
		logger.Info("Stage started", "iteration", iteration, "agent", agent.Name())

		result, err := agent.Execute(ctx, wctx)
		finished := uc.now()

		entry := entity.ExecutionHistoryEntry{
			Iteration: iteration,
			Agent:     agent.Name(),
			Role:      role,
			Result:    result,
			StartedAt: started,
			Duration:  finished.Sub(started),
		}
		uc.history = append(uc.history, entry)
		res.History = append(res.History, entry)
		res.Iterations = iteration

		wctx.Set(entity.KeyPreviousResults, result)
		wctx.Set(role.OutputKey(), result)

		notify(observers, func(o output.WorkflowObserver) {
			o.StageCompleted(ctx, completedEvent(runID, entry, agent, err == nil, finished))
		})

		if err != nil {
			logger.Error("Stage failed, stopping workflow", "iteration", iteration, "agent", agent.Name(), "error", err)
			res.Success = false
			res.FailedAgent = agent.Name()
			break
		}
		logger.Info("Stage completed", "iteration", iteration, "agent", agent.Name(), "tool", result.Tool)

		next, ok := uc.nextRole(role, result, visited)
		if !ok {
			break
		}
		role = next
	}

	logger.Info("Workflow finished", "success", res.Success, "iterations", res.Iterations)
	return res, nil
}

// nextRole picks the stage after current. In handoff mode a missing, invalid
// or already visited handoff target ends the run.
func (uc *UseCase) nextRole(current entity.AgentRole, result *entity.Result, visited map[entity.AgentRole]bool) (entity.AgentRole, bool) {
	if !uc.cfg.FollowHandoffs {
		i := slices.Index(entity.WorkflowOrder, current)
		if i < 0 || i+1 >= len(entity.WorkflowOrder) {
			return "", false
		}
		return entity.WorkflowOrder[i+1], true
	}

	if result.Handoff == nil {
		return "", false
	}
	if err := result.Handoff.Validate(); err != nil {
		uc.logger.Warn("Ignoring invalid handoff", "source", result.Agent, "error", err)
		return "", false
	}
	target := result.Handoff.TargetAgent
	if visited[target] {
		uc.logger.Warn("Ignoring handoff to an agent that already ran", "source", result.Agent, "target", target)
		return "", false
	}
	return target, true
}

func completedEvent(runID string, entry entity.ExecutionHistoryEntry, agent output.Agent, ok bool, at time.Time) entity.StageEvent {
	event := entity.StageEvent{
		RunID:     runID,
		Iteration: entry.Iteration,
		Role:      entry.Role,
		Agent:     entry.Agent,
		Status:    entity.StageStatusCompleted,
		State:     agent.State(),
		Result:    entry.Result,
		Duration:  entry.Duration,
		Timestamp: at,
	}
	if !ok {
		event.Status = entity.StageStatusFailed
		return event
	}
	if last, found := agent.LastEntry(); found {
		event.Thought = &last.Thought
		event.Action = &last.Action
	}
	return event
}

func notify(observers []output.WorkflowObserver, fn func(output.WorkflowObserver)) {
	for _, o := range observers {
		fn(o)
	}
}

func (uc *UseCase) Summary() string {
	agentsUsed := make([]string, 0, len(uc.history))
	for _, h := range uc.history {
		agentsUsed = append(agentsUsed, h.Agent)
	}

	agents := uc.agents.List()
	memories := make([]string, 0, len(agents))
	for _, a := range agents {
		memories = append(memories, a.MemorySummary())
	}

	summary, err := prompts.RenderSummary(prompts.SummaryData{
		Iterations: len(uc.history),
		AgentsUsed: agentsUsed,
		Agents:     memories,
	})
	if err != nil {
		uc.logger.Error("Failed to render summary", "error", err)
		return fmt.Sprintf("Total Iterations: %d", len(uc.history))
	}
	return summary
}

func (uc *UseCase) AgentInfo(role entity.AgentRole) (entity.AgentInfo, error) {
	agent, ok := uc.agents.Get(role)
	if !ok {
		return entity.AgentInfo{}, fmt.Errorf("%w: %s", entity.ErrAgentNotFound, role)
	}
	return infoOf(agent), nil
}

func (uc *UseCase) Agents() []entity.AgentInfo {
	agents := uc.agents.List()
	out := make([]entity.AgentInfo, 0, len(agents))
	for _, a := range agents {
		out = append(out, infoOf(a))
	}
	return out
}

func (uc *UseCase) ListAgents() []entity.AgentRole {
	agents := uc.agents.List()
	roles := make([]entity.AgentRole, 0, len(agents))
	for _, a := range agents {
		roles = append(roles, a.Role())
	}
	return roles
}

func (uc *UseCase) History() []entity.ExecutionHistoryEntry {
	return slices.Clone(uc.history)
}

// ClearHistory drops the execution history and every agent's memory.
func (uc *UseCase) ClearHistory() {
	uc.history = nil
	for _, a := range uc.agents.List() {
		a.ClearMemory()
	}
	uc.logger.Info("History cleared")
}

func infoOf(a output.Agent) entity.AgentInfo {
	return entity.AgentInfo{
		Role:          a.Role(),
		Name:          a.Name(),
		Description:   a.Description(),
		Tools:         a.Capabilities(),
		State:         a.State(),
		MemoryEntries: a.MemoryLen(),
		AIEnabled:     a.AIEnabled(),
	}
}
