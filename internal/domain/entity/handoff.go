package entity

import "errors"

// Handoff is an agent's request that another role takes over next.
type Handoff struct {
	TargetAgent AgentRole      `json:"target_agent"`
	Source      string         `json:"source"`
	Context     map[string]any `json:"context,omitempty"`
	Reason      string         `json:"reason"`
}

func (h *Handoff) Validate() error {
	if h.Source == "" {
		return errors.New("source is required")
	}
	if _, ok := ParseAgentRole(string(h.TargetAgent)); !ok {
		return errors.New("target_agent must be a registered role")
	}
	if h.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
