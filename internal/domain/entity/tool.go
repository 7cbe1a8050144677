package entity

type ToolName string

const (
	ToolTaskDecomposition ToolName = "task_decomposition"
	ToolAgentRouter       ToolName = "agent_router"
	ToolGoalValidator     ToolName = "goal_validator"

	ToolWhois      ToolName = "whois"
	ToolNmap       ToolName = "nmap"
	ToolSubfinder  ToolName = "subfinder"
	ToolHarvester  ToolName = "theHarvester"
	ToolShodan     ToolName = "shodan"
	ToolVirusTotal ToolName = "virustotal"
	ToolDNSEnum    ToolName = "dns_enum"
	ToolPortScan   ToolName = "port_scan"

	ToolVulnerabilityAssessment ToolName = "vulnerability_assessment"
	ToolExploitSearch           ToolName = "exploit_search"
	ToolPayloadBuilder          ToolName = "payload_builder"

	ToolGenerateReport    ToolName = "generate_report"
	ToolMitreMapper       ToolName = "mitre_mapper"
	ToolCVSSCalculator    ToolName = "cvss_calculator"
	ToolMarkdownFormatter ToolName = "markdown_formatter"
	ToolRiskAssessor      ToolName = "risk_assessor"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolResult is what a tool-execution collaborator reports for one invocation.
type ToolResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RawOutput any    `json:"raw_output,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}
