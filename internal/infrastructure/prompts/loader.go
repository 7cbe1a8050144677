package prompts

import (
	_ "embed"
)

//go:embed planner_prompt.txt
var plannerPrompt string

//go:embed planner_fallback.txt
var plannerFallback string

//go:embed recon_prompt.txt
var reconPrompt string

//go:embed recon_fallback.txt
var reconFallback string

//go:embed exploit_prompt.txt
var exploitPrompt string

//go:embed exploit_fallback.txt
var exploitFallback string

//go:embed reporting_prompt.txt
var reportingPrompt string

//go:embed reporting_fallback.txt
var reportingFallback string

//go:embed summary.txt
var SummaryTemplate string

// Template pairs a role's reasoning prompt with the analysis rendered when no
// reasoning backend answers.
type Template struct {
	Name     string
	Prompt   string
	Fallback string
}

var (
	Planner   = Template{Name: "planner", Prompt: plannerPrompt, Fallback: plannerFallback}
	Recon     = Template{Name: "recon", Prompt: reconPrompt, Fallback: reconFallback}
	Exploit   = Template{Name: "exploit", Prompt: exploitPrompt, Fallback: exploitFallback}
	Reporting = Template{Name: "reporting", Prompt: reportingPrompt, Fallback: reportingFallback}
)
