package entity

import "time"

type StageStatus string

const (
	StageStatusRunning   StageStatus = "running"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
)

type ExecutionHistoryEntry struct {
	Iteration int           `json:"iteration"`
	Agent     string        `json:"agent"`
	Role      AgentRole     `json:"role"`
	Result    *Result       `json:"result"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// StageEvent describes one stage transition of a workflow run.
type StageEvent struct {
	RunID     string        `json:"run_id"`
	Iteration int           `json:"iteration"`
	Role      AgentRole     `json:"role"`
	Agent     string        `json:"agent"`
	Status    StageStatus   `json:"status"`
	State     AgentState    `json:"state"`
	Thought   *AgentThought `json:"thought,omitempty"`
	Action    *AgentAction  `json:"action,omitempty"`
	Result    *Result       `json:"result,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
