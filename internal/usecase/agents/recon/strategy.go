package recon

import (
	"context"
	"fmt"

	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/prompts"
	"redcalibur/internal/usecase/agents/react"
)

const (
	Name = "ReconAgent"

	confidence        = 0.85
	unknownConfidence = 0.5
)

var capabilities = []entity.ToolName{
	entity.ToolWhois,
	entity.ToolNmap,
	entity.ToolSubfinder,
	entity.ToolHarvester,
	entity.ToolShodan,
	entity.ToolVirusTotal,
	entity.ToolDNSEnum,
	entity.ToolPortScan,
}

var toolHints = []string{
	"whois: Domain registration information",
	"nmap: Port scanning and service detection",
	"subfinder: Subdomain discovery",
	"theHarvester: Email and subdomain enumeration",
	"shodan: Internet-wide scanning",
	"virustotal: Threat intelligence",
	"dns_enum: DNS enumeration",
}

var _ react.Strategy = (*Strategy)(nil)

// Strategy gathers information about the target, starting with WHOIS.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Role() entity.AgentRole {
	return entity.AgentRoleRecon
}

func (s *Strategy) Name() string {
	return Name
}

func (s *Strategy) Description() string {
	return "OSINT and reconnaissance specialist"
}

func (s *Strategy) Capabilities() []entity.ToolName {
	return capabilities
}

func (s *Strategy) Think(ctx context.Context, r *react.Reasoning, view entity.ContextView) (entity.AgentThought, error) {
	target, err := entity.StringValue(view, entity.KeyTarget, "Unknown")
	if err != nil {
		return entity.AgentThought{}, err
	}
	scanType, err := entity.StringValue(view, entity.KeyScanType, "comprehensive")
	if err != nil {
		return entity.AgentThought{}, err
	}

	targetType, lookupHost := Classify(target)

	analysis, err := r.Analyze(ctx, prompts.Recon, prompts.ReconData{
		Target:     target,
		TargetType: string(targetType),
		LookupHost: lookupHost,
		ScanType:   scanType,
		Tools:      toolHints,
	})
	if err != nil {
		return entity.AgentThought{}, err
	}

	c := confidence
	if targetType == TargetUnknown {
		c = unknownConfidence
	}

	return entity.AgentThought{
		Observation: fmt.Sprintf("Target identified: %s (Type: %s)", target, targetType),
		Analysis:    analysis,
		Plan:        "Execute multi-phase reconnaissance starting with WHOIS",
		Confidence:  c,
		Subject:     lookupHost,
		Delegate:    entity.AgentRoleExploit,
	}, nil
}

func (s *Strategy) Act(thought entity.AgentThought) (entity.AgentAction, error) {
	if thought.Subject == "" {
		return entity.AgentAction{}, fmt.Errorf("no lookup host in thought")
	}
	return entity.AgentAction{
		Tool:            entity.ToolWhois,
		Parameters:      entity.NewParams("target", thought.Subject, "verbose", true),
		Reasoning:       "Starting reconnaissance with WHOIS lookup to gather domain information",
		ExpectedOutcome: "Domain registration details, nameservers, contact information",
	}, nil
}
