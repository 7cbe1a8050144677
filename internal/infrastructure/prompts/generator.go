package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type Phase struct {
	Name  string
	Goal  string
	Agent string
}

type PlannerData struct {
	Objective string
	Target    string
	Phases    []Phase
}

type ReconData struct {
	Target     string
	TargetType string
	LookupHost string
	ScanType   string
	Tools      []string
}

type ExploitData struct {
	Objective       string
	Target          string
	Vulnerabilities []string
}

type ReportingData struct {
	Objective     string
	Target        string
	ReportDate    string
	FindingsCount int
}

type SummaryData struct {
	Iterations int
	AgentsUsed []string
	Agents     []string
}

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

// Render executes text against data. Unknown fields and missing map keys are errors.
func Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (t Template) RenderPrompt(data any) (string, error) {
	return Render(t.Name+"_prompt", t.Prompt, data)
}

func (t Template) RenderFallback(data any) (string, error) {
	out, err := Render(t.Name+"_fallback", t.Fallback, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func RenderSummary(data SummaryData) (string, error) {
	return Render("summary", SummaryTemplate, data)
}
