package tool

import (
	"context"
	"fmt"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

type responder func(params entity.Params, view entity.ContextView) (*entity.ToolResult, error)

var _ output.ToolPort = (*SimulatedTool)(nil)

// SimulatedTool answers with a deterministic payload flagged as simulated.
// It never touches the network or the target.
type SimulatedTool struct {
	name        entity.ToolName
	description string
	required    []string
	respond     responder
	logger      output.LoggerPort
}

func (t *SimulatedTool) Name() entity.ToolName { return t.name }
func (t *SimulatedTool) Description() string   { return t.description }

// Required lists the parameters the tool rejects the call without.
func (t *SimulatedTool) Required() []string { return t.required }

func (t *SimulatedTool) Invoke(ctx context.Context, params entity.Params, view entity.ContextView) (*entity.ToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, key := range t.required {
		v, ok := params.Get(key)
		if !ok || v == nil || v == "" {
			t.logger.Warn("Missing tool parameter", "tool", t.name, "param", key)
			return &entity.ToolResult{
				Success:   false,
				Message:   fmt.Sprintf("missing required parameter %q", key),
				Simulated: true,
			}, nil
		}
	}

	result, err := t.respond(params, view)
	if err != nil {
		return nil, err
	}
	result.Simulated = true
	return result, nil
}

func newTool(name entity.ToolName, description string, logger output.LoggerPort, respond responder, required ...string) *SimulatedTool {
	if respond == nil {
		respond = generic(name)
	}
	return &SimulatedTool{
		name:        name,
		description: description,
		required:    required,
		respond:     respond,
		logger:      logger,
	}
}

// NewSimulatedTools returns one tool per capability of the four agents.
func NewSimulatedTools(logger output.LoggerPort) []output.ToolPort {
	logger = logger.WithField("component", "simulated_tools")

	return []output.ToolPort{
		newTool(entity.ToolTaskDecomposition, "Breaks an objective into ordered phases", logger, taskDecomposition, "objective", "phases"),
		newTool(entity.ToolAgentRouter, "Routes a task to the best suited agent", logger, nil, "task"),
		newTool(entity.ToolGoalValidator, "Checks a plan against the engagement objective", logger, nil, "objective"),

		newTool(entity.ToolWhois, "Domain registration information", logger, whois, "target"),
		newTool(entity.ToolNmap, "Port scanning and service detection", logger, nil, "target"),
		newTool(entity.ToolSubfinder, "Subdomain discovery", logger, nil, "target"),
		newTool(entity.ToolHarvester, "Email and subdomain enumeration", logger, nil, "target"),
		newTool(entity.ToolShodan, "Internet-wide scanning", logger, nil, "target"),
		newTool(entity.ToolVirusTotal, "Threat intelligence", logger, nil, "target"),
		newTool(entity.ToolDNSEnum, "DNS enumeration", logger, nil, "target"),
		newTool(entity.ToolPortScan, "TCP port scan", logger, nil, "target"),

		newTool(entity.ToolVulnerabilityAssessment, "Non-destructive vulnerability verification", logger, vulnerabilityAssessment, "target", "vulnerability"),
		newTool(entity.ToolExploitSearch, "Searches public exploit databases", logger, nil, "vulnerability"),
		newTool(entity.ToolPayloadBuilder, "Builds proof-of-concept payloads", logger, nil, "vulnerability"),

		newTool(entity.ToolGenerateReport, "Renders the engagement report", logger, generateReport, "template", "format"),
		newTool(entity.ToolMitreMapper, "Maps findings to MITRE ATT&CK techniques", logger, nil),
		newTool(entity.ToolCVSSCalculator, "Computes CVSS scores", logger, nil),
		newTool(entity.ToolMarkdownFormatter, "Formats report sections as Markdown", logger, nil),
		newTool(entity.ToolRiskAssessor, "Rates business risk of findings", logger, nil),
	}
}

func RegisterSimulated(registry output.ToolRegistry, logger output.LoggerPort) {
	for _, t := range NewSimulatedTools(logger) {
		registry.Register(t)
	}
}
