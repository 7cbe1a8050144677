package entity

import "fmt"

type AgentState string

const (
	AgentStateIdle      AgentState = "idle"
	AgentStateThinking  AgentState = "thinking"
	AgentStateActing    AgentState = "acting"
	AgentStateCompleted AgentState = "completed"
	AgentStateError     AgentState = "error"
)

var validTransitions = map[AgentState][]AgentState{
	AgentStateIdle:      {AgentStateThinking},
	AgentStateThinking:  {AgentStateActing, AgentStateError},
	AgentStateActing:    {AgentStateCompleted, AgentStateError},
	AgentStateCompleted: {AgentStateThinking},
	AgentStateError:     {AgentStateThinking},
}

func CanTransition(from, to AgentState) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether an execution has finished in this state.
func (s AgentState) Terminal() bool {
	return s == AgentStateCompleted || s == AgentStateError
}

type ErrInvalidTransition struct {
	From AgentState
	To   AgentState
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}
