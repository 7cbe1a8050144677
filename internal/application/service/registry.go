package service

import (
	"sort"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns the registered tools sorted by name.
func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

var _ output.AgentRegistry = (*AgentRegistryImpl)(nil)

// AgentRegistryImpl keys agents by role and lists them in workflow order.
type AgentRegistryImpl struct {
	agents map[entity.AgentRole]output.Agent
}

func NewAgentRegistry(agents ...output.Agent) *AgentRegistryImpl {
	r := &AgentRegistryImpl{
		agents: make(map[entity.AgentRole]output.Agent, len(agents)),
	}
	for _, a := range agents {
		r.Register(a)
	}
	return r
}

func (r *AgentRegistryImpl) Register(agent output.Agent) {
	r.agents[agent.Role()] = agent
}

func (r *AgentRegistryImpl) Get(role entity.AgentRole) (output.Agent, bool) {
	agent, ok := r.agents[role]
	return agent, ok
}

func (r *AgentRegistryImpl) List() []output.Agent {
	result := make([]output.Agent, 0, len(r.agents))
	for _, role := range entity.WorkflowOrder {
		if a, ok := r.agents[role]; ok {
			result = append(result, a)
		}
	}
	return result
}
