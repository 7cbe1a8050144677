package planner

import (
	"context"
	"fmt"

	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
	"redcalibur/internal/usecase/agents/react"
)

const (
	Name       = "PlannerAgent"
	confidence = 0.90
)

var phases = []prompts.Phase{
	{Name: "Reconnaissance", Goal: "Gather information about the target", Agent: "ReconAgent"},
	{Name: "Vulnerability Scanning", Goal: "Identify potential weaknesses", Agent: "ExploitAgent"},
	{Name: "Exploitation", Goal: "Attempt to exploit vulnerabilities", Agent: "ExploitAgent"},
	{Name: "Reporting", Goal: "Document findings and recommendations", Agent: "ReportingAgent"},
}

var phaseKeys = []string{"reconnaissance", "scanning", "exploitation", "reporting"}

var _ react.Strategy = (*Strategy)(nil)

// Strategy breaks an objective into assessment phases and hands off to recon.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Role() entity.AgentRole {
	return entity.AgentRolePlanner
}

func (s *Strategy) Name() string {
	return Name
}

func (s *Strategy) Description() string {
	return "Strategic planning and task orchestration"
}

func (s *Strategy) Capabilities() []entity.ToolName {
	return []entity.ToolName{
		entity.ToolTaskDecomposition,
		entity.ToolAgentRouter,
		entity.ToolGoalValidator,
	}
}

func (s *Strategy) Think(ctx context.Context, r *react.Reasoning, view entity.ContextView) (entity.AgentThought, error) {
	objective, err := entity.StringValue(view, entity.KeyObjective, "Unknown objective")
	if err != nil {
		return entity.AgentThought{}, err
	}
	target, err := entity.StringValue(view, entity.KeyTarget, "Unknown target")
	if err != nil {
		return entity.AgentThought{}, err
	}

	analysis, err := r.Analyze(ctx, prompts.Planner, prompts.PlannerData{
		Objective: objective,
		Target:    target,
		Phases:    phases,
	})
	if err != nil {
		return entity.AgentThought{}, err
	}

	return entity.AgentThought{
		Observation: fmt.Sprintf("Analyzing objective: %s for target: %s", objective, target),
		Analysis:    analysis,
		Plan:        "Start with reconnaissance using ReconAgent",
		Confidence:  confidence,
		Subject:     target,
		Focus:       objective,
		Delegate:    entity.AgentRoleRecon,
	}, nil
}

func (s *Strategy) Act(thought entity.AgentThought) (entity.AgentAction, error) {
	return entity.AgentAction{
		Tool: entity.ToolTaskDecomposition,
		Parameters: entity.NewParams(
			"objective", thought.Focus,
			"target", thought.Subject,
			"phases", append([]string(nil), phaseKeys...),
			"first_agent", "ReconAgent",
		),
		Reasoning:       "Breaking down the penetration test into manageable phases",
		ExpectedOutcome: "Structured task tree for execution",
	}, nil
}
