package entity

// Result is what one agent execution hands back to its caller.
type Result struct {
	Success    bool      `json:"success"`
	Agent      string    `json:"agent"`
	Tool       ToolName  `json:"tool,omitempty"`
	Parameters Params    `json:"parameters"`
	Reasoning  string    `json:"reasoning,omitempty"`
	Message    string    `json:"message,omitempty"`
	RawOutput  any       `json:"raw_output,omitempty"`
	Simulated  bool      `json:"simulated,omitempty"`
	Error      string    `json:"error,omitempty"`
	ErrorKind  ErrorKind `json:"error_kind,omitempty"`
	Handoff    *Handoff  `json:"handoff,omitempty"`
}

func FailedResult(agent string, err *AgentError) *Result {
	return &Result{
		Success:   false,
		Agent:     agent,
		Error:     err.Error(),
		ErrorKind: err.Kind,
	}
}
