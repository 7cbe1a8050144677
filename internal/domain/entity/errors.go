package entity

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrKindReasoningUnavailable ErrorKind = "reasoning_unavailable"
	ErrKindToolExecution        ErrorKind = "tool_execution_failure"
	ErrKindContractViolation    ErrorKind = "contract_violation"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrUnknownTool   = errors.New("unknown tool")
)

// AgentError is the typed failure produced at the agent boundary.
type AgentError struct {
	Kind    ErrorKind
	Agent   string
	Message string
	Cause   error
}

func NewAgentError(kind ErrorKind, agent, message string, cause error) *AgentError {
	return &AgentError{Kind: kind, Agent: agent, Message: message, Cause: cause}
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Agent, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Agent, e.Message)
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

// Is matches another *AgentError by kind, so errors.Is(err, &AgentError{Kind: k}) works.
func (e *AgentError) Is(target error) bool {
	t, ok := target.(*AgentError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func KindOf(err error) (ErrorKind, bool) {
	var ae *AgentError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// IsRetryable reports whether err came from a collaborator rather than a broken contract.
func IsRetryable(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	return kind == ErrKindReasoningUnavailable || kind == ErrKindToolExecution
}
