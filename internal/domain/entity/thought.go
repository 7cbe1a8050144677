package entity

import (
	"fmt"
	"math"
	"time"
)

// AgentThought is the outcome of one reasoning step. Subject is the entity the
// thought is about (the host to look up, the system under test) and Focus
// narrows it, e.g. the candidate vulnerability to verify. Delegate names the
// role the agent recommends for the next step.
type AgentThought struct {
	Observation string    `json:"observation"`
	Analysis    string    `json:"analysis"`
	Plan        string    `json:"plan"`
	Confidence  float64   `json:"confidence"`
	Subject     string    `json:"subject,omitempty"`
	Focus       string    `json:"focus,omitempty"`
	Delegate    AgentRole `json:"delegate,omitempty"`
}

func (t AgentThought) Validate() error {
	if math.IsNaN(t.Confidence) || t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("confidence %.2f out of range [0, 1]", t.Confidence)
	}
	if t.Analysis == "" {
		return fmt.Errorf("empty analysis")
	}
	return nil
}

// AgentAction is the single tool invocation chosen from a thought.
type AgentAction struct {
	Tool            ToolName `json:"tool"`
	Parameters      Params   `json:"parameters"`
	Reasoning       string   `json:"reasoning"`
	ExpectedOutcome string   `json:"expected_outcome"`
}

type MemoryEntry struct {
	Thought    AgentThought `json:"thought"`
	Action     AgentAction  `json:"action"`
	Result     *Result      `json:"result"`
	RecordedAt time.Time    `json:"recorded_at"`
}
