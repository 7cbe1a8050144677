package tool

import (
	"fmt"

	"redcalibur/internal/domain/entity"
)

func generic(name entity.ToolName) responder {
	return func(params entity.Params, _ entity.ContextView) (*entity.ToolResult, error) {
		msg := fmt.Sprintf("%s executed", name)
		if target := params.String("target"); target != "" {
			msg = fmt.Sprintf("%s executed against %s", name, target)
		}
		return &entity.ToolResult{
			Success:   true,
			Message:   msg,
			RawOutput: params.Map(),
		}, nil
	}
}

func taskDecomposition(params entity.Params, _ entity.ContextView) (*entity.ToolResult, error) {
	phases, _ := params.Get("phases")
	list, ok := phases.([]string)
	if !ok {
		return &entity.ToolResult{Success: false, Message: fmt.Sprintf("phases: expected list of strings, got %T", phases)}, nil
	}

	tasks := make([]map[string]any, 0, len(list))
	for i, phase := range list {
		tasks = append(tasks, map[string]any{"order": i + 1, "phase": phase})
	}

	return &entity.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Decomposed objective into %d phases", len(list)),
		RawOutput: map[string]any{
			"tasks":       tasks,
			"first_agent": params.String("first_agent"),
		},
	}, nil
}

func whois(params entity.Params, _ entity.ContextView) (*entity.ToolResult, error) {
	target := params.String("target")
	verbose, _ := params.Get("verbose")

	return &entity.ToolResult{
		Success: true,
		Message: fmt.Sprintf("WHOIS lookup completed for %s", target),
		RawOutput: map[string]any{
			"domain":      target,
			"verbose":     verbose == true,
			"registrar":   "unavailable in simulation",
			"nameservers": []string{},
		},
	}, nil
}

func vulnerabilityAssessment(params entity.Params, _ entity.ContextView) (*entity.ToolResult, error) {
	mode := params.String("mode")
	if mode != "non_destructive" {
		return &entity.ToolResult{
			Success: false,
			Message: fmt.Sprintf("mode %q is not permitted; only non_destructive assessments run", mode),
		}, nil
	}

	target := params.String("target")
	vuln := params.String("vulnerability")
	return &entity.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Assessed %s on %s (%s)", vuln, target, mode),
		RawOutput: map[string]any{
			"target":        target,
			"vulnerability": vuln,
			"status":        "unverified",
		},
	}, nil
}

var reportSections = []struct {
	flag    string
	section string
}{
	{"include_executive_summary", "Executive Summary"},
	{"include_mitre_mapping", "MITRE ATT&CK Mapping"},
	{"include_recommendations", "Recommendations"},
}

func generateReport(params entity.Params, view entity.ContextView) (*entity.ToolResult, error) {
	reportDate, err := entity.StringValue(view, entity.KeyReportDate, "unspecified")
	if err != nil {
		return nil, err
	}

	sections := []string{"Technical Findings"}
	for _, s := range reportSections {
		if v, _ := params.Get(s.flag); v == true {
			sections = append(sections, s.section)
		}
	}

	format := params.String("format")
	return &entity.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Report %q rendered as %s", params.String("template"), format),
		RawOutput: map[string]any{
			"format":      format,
			"report_date": reportDate,
			"sections":    sections,
		},
	}, nil
}
