package reporting

import (
	"context"
	"fmt"
	"reflect"

	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
	"redcalibur/internal/usecase/agents/react"
)

const (
	Name       = "ReportingAgent"
	confidence = 0.95
)

var _ react.Strategy = (*Strategy)(nil)

// Strategy plans the engagement report. It is the last stage and delegates to no one.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Role() entity.AgentRole {
	return entity.AgentRoleReporting
}

func (s *Strategy) Name() string {
	return Name
}

func (s *Strategy) Description() string {
	return "Report generation and documentation specialist"
}

func (s *Strategy) Capabilities() []entity.ToolName {
	return []entity.ToolName{
		entity.ToolGenerateReport,
		entity.ToolMitreMapper,
		entity.ToolCVSSCalculator,
		entity.ToolMarkdownFormatter,
		entity.ToolRiskAssessor,
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
	reportDate, err := entity.StringValue(view, entity.KeyReportDate, "unspecified")
	if err != nil {
		return entity.AgentThought{}, err
	}
	findings, err := countFindings(view)
	if err != nil {
		return entity.AgentThought{}, err
	}

	analysis, err := r.Analyze(ctx, prompts.Reporting, prompts.ReportingData{
		Objective:     objective,
		Target:        target,
		ReportDate:    reportDate,
		FindingsCount: findings,
	})
	if err != nil {
		return entity.AgentThought{}, err
	}

	return entity.AgentThought{
		Observation: fmt.Sprintf("Processing engagement results for %s", target),
		Analysis:    analysis,
		Plan:        "Generate comprehensive penetration test report",
		Confidence:  confidence,
		Subject:     target,
	}, nil
}

func (s *Strategy) Act(entity.AgentThought) (entity.AgentAction, error) {
	return entity.AgentAction{
		Tool: entity.ToolGenerateReport,
		Parameters: entity.NewParams(
			"template", "pentest_report",
			"format", "pdf",
			"include_executive_summary", true,
			"include_mitre_mapping", true,
			"include_recommendations", true,
		),
		Reasoning:       "Creating professional penetration test report with all findings",
		ExpectedOutcome: "Comprehensive PDF report with executive summary and technical details",
	}, nil
}

// countFindings accepts any list under the findings key; entries may be
// strings or structured records.
func countFindings(view entity.ContextView) (int, error) {
	v, ok := view.Get(entity.KeyFindings)
	if !ok || v == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 0, fmt.Errorf("context key %q: expected list, got %T", entity.KeyFindings, v)
	}
	return rv.Len(), nil
}
