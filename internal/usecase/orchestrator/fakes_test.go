package orchestrator

import (
	"context"
	"fmt"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/application/service"
	"redcalibur/internal/domain/entity"
)

type recordingObserver struct {
	events []entity.StageEvent
}

func (o *recordingObserver) StageStarted(_ context.Context, e entity.StageEvent) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) StageCompleted(_ context.Context, e entity.StageEvent) {
	o.events = append(o.events, e)
}

// fakeAgent records the context keys it sees and hands off as configured.
type fakeAgent struct {
	role    entity.AgentRole
	handoff entity.AgentRole
	seen    *[][]string
	memory  []entity.MemoryEntry
	state   entity.AgentState
}

var _ output.Agent = (*fakeAgent)(nil)

func (p *fakeAgent) Role() entity.AgentRole          { return p.role }
func (p *fakeAgent) Name() string                    { return fmt.Sprintf("%s-fake", p.role) }
func (p *fakeAgent) Description() string             { return "fake" }
func (p *fakeAgent) Capabilities() []entity.ToolName { return nil }
func (p *fakeAgent) State() entity.AgentState        { return p.state }
func (p *fakeAgent) AIEnabled() bool                 { return false }

func (p *fakeAgent) Execute(_ context.Context, wctx *entity.WorkflowContext) (*entity.Result, error) {
	*p.seen = append(*p.seen, wctx.Keys())
	result := &entity.Result{Success: true, Agent: p.Name()}
	if p.handoff != "" {
		result.Handoff = &entity.Handoff{TargetAgent: p.handoff, Source: p.Name(), Reason: "fake"}
	}
	p.memory = append(p.memory, entity.MemoryEntry{Result: result})
	p.state = entity.AgentStateCompleted
	return result, nil
}

func (p *fakeAgent) Memory() []entity.MemoryEntry { return p.memory }
func (p *fakeAgent) MemoryLen() int               { return len(p.memory) }
func (p *fakeAgent) MemorySummary() string        { return p.Name() }
func (p *fakeAgent) ClearMemory()                 { p.memory = nil }

func (p *fakeAgent) LastEntry() (entity.MemoryEntry, bool) {
	if len(p.memory) == 0 {
		return entity.MemoryEntry{}, false
	}
	return p.memory[len(p.memory)-1], true
}

type fakeAgents struct {
	seen   [][]string
	agents []output.Agent
}

func newFakeAgents(handoffs map[entity.AgentRole]entity.AgentRole) *fakeAgents {
	p := &fakeAgents{}
	for _, role := range entity.WorkflowOrder {
		p.agents = append(p.agents, &fakeAgent{
			role:    role,
			handoff: handoffs[role],
			seen:    &p.seen,
			state:   entity.AgentStateIdle,
		})
	}
	return p
}

func (p *fakeAgents) registry() output.AgentRegistry {
	return service.NewAgentRegistry(p.agents...)
}
