package entity

import "fmt"

type AgentRole string

const (
	AgentRolePlanner   AgentRole = "planner"
	AgentRoleRecon     AgentRole = "recon"
	AgentRoleExploit   AgentRole = "exploit"
	AgentRoleReporting AgentRole = "reporting"
)

// WorkflowOrder is the fixed stage order of a workflow run.
var WorkflowOrder = []AgentRole{
	AgentRolePlanner,
	AgentRoleRecon,
	AgentRoleExploit,
	AgentRoleReporting,
}

func (r AgentRole) String() string {
	return string(r)
}

// OutputKey is the context key under which the role's last result is stored.
func (r AgentRole) OutputKey() string {
	return fmt.Sprintf("%s_output", r)
}

func ParseAgentRole(s string) (AgentRole, bool) {
	for _, role := range WorkflowOrder {
		if string(role) == s {
			return role, true
		}
	}
	return "", false
}

type AgentInfo struct {
	Role          AgentRole  `json:"role"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Tools         []ToolName `json:"tools"`
	State         AgentState `json:"state"`
	MemoryEntries int        `json:"memory_entries"`
	AIEnabled     bool       `json:"ai_enabled"`
}
