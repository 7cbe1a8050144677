package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AgentState
		want     bool
	}{
		{AgentStateIdle, AgentStateThinking, true},
		{AgentStateThinking, AgentStateActing, true},
		{AgentStateThinking, AgentStateError, true},
		{AgentStateActing, AgentStateCompleted, true},
		{AgentStateActing, AgentStateError, true},
		{AgentStateCompleted, AgentStateThinking, true},
		{AgentStateError, AgentStateThinking, true},

		{AgentStateIdle, AgentStateActing, false},
		{AgentStateIdle, AgentStateCompleted, false},
		{AgentStateThinking, AgentStateCompleted, false},
		{AgentStateCompleted, AgentStateIdle, false},
		{AgentStateActing, AgentStateThinking, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, AgentStateCompleted.Terminal())
	assert.True(t, AgentStateError.Terminal())
	assert.False(t, AgentStateThinking.Terminal())
}

func TestErrInvalidTransition(t *testing.T) {
	err := ErrInvalidTransition{From: AgentStateIdle, To: AgentStateActing}
	assert.EqualError(t, err, "invalid state transition: idle -> acting")
}
