package exploit

import (
	"context"
	"fmt"
	"math"

	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
	"redcalibur/internal/usecase/agents/react"
)

const (
	Name = "ExploitAgent"

	noCandidate = "none"
)

var _ react.Strategy = (*Strategy)(nil)

// Strategy picks one candidate vulnerability and verifies it without side effects.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Role() entity.AgentRole {
	return entity.AgentRoleExploit
}

func (s *Strategy) Name() string {
	return Name
}

func (s *Strategy) Description() string {
	return "Vulnerability assessment and exploitation specialist"
}

func (s *Strategy) Capabilities() []entity.ToolName {
	return []entity.ToolName{
		entity.ToolVulnerabilityAssessment,
		entity.ToolExploitSearch,
		entity.ToolPayloadBuilder,
	}
}

func (s *Strategy) Think(ctx context.Context, r *react.Reasoning, view entity.ContextView) (entity.AgentThought, error) {
	target, err := entity.StringValue(view, entity.KeyTarget, "Unknown")
	if err != nil {
		return entity.AgentThought{}, err
	}
	objective, err := entity.StringValue(view, entity.KeyObjective, "Penetration Test")
	if err != nil {
		return entity.AgentThought{}, err
	}
	candidates, err := entity.StringList(view, entity.KeyVulnerabilities)
	if err != nil {
		return entity.AgentThought{}, err
	}

	analysis, err := r.Analyze(ctx, prompts.Exploit, prompts.ExploitData{
		Objective:       objective,
		Target:          target,
		Vulnerabilities: candidates,
	})
	if err != nil {
		return entity.AgentThought{}, err
	}

	focus := noCandidate
	plan := "Run a baseline non-destructive vulnerability assessment"
	if len(candidates) > 0 {
		focus = candidates[0]
		plan = fmt.Sprintf("Verify %s with a non-destructive check", focus)
	}

	return entity.AgentThought{
		Observation: fmt.Sprintf("Assessing %d candidate vulnerabilities on %s", len(candidates), target),
		Analysis:    analysis,
		Plan:        plan,
		Confidence:  Confidence(len(candidates)),
		Subject:     target,
		Focus:       focus,
		Delegate:    entity.AgentRoleReporting,
	}, nil
}

// Confidence grows with the number of candidates: 0.5 with none, then
// 0.6 + 0.1 per candidate, capped at 0.9.
func Confidence(candidates int) float64 {
	if candidates <= 0 {
		return 0.5
	}
	return math.Min(0.6+0.1*float64(candidates), 0.9)
}

func (s *Strategy) Act(thought entity.AgentThought) (entity.AgentAction, error) {
	vulnerability := thought.Focus
	if vulnerability == "" {
		vulnerability = noCandidate
	}
	return entity.AgentAction{
		Tool: entity.ToolVulnerabilityAssessment,
		Parameters: entity.NewParams(
			"target", thought.Subject,
			"vulnerability", vulnerability,
			"mode", "non_destructive",
		),
		Reasoning:       "Confirming the most promising candidate before any exploitation attempt",
		ExpectedOutcome: "Confirmed or ruled-out vulnerability with supporting evidence",
	}, nil
}
