package prompts

import (
	"strings"
	"testing"
)

var testPhases = []Phase{
	{Name: "Reconnaissance", Goal: "map the attack surface", Agent: "recon"},
	{Name: "Exploitation", Goal: "verify candidate weaknesses", Agent: "exploit"},
}

func TestPlannerFallback(t *testing.T) {
	result, err := Planner.RenderFallback(PlannerData{
		Objective: "Assess web perimeter",
		Target:    "example.com",
		Phases:    testPhases,
	})
	if err != nil {
		t.Fatalf("RenderFallback failed: %v", err)
	}

	for _, want := range []string{
		"Target Analysis: example.com",
		"Objective: Assess web perimeter",
		"1. Reconnaissance - map the attack surface",
		"2. Exploitation - verify candidate weaknesses",
		"- Phase 1: recon",
		"- Phase 2: exploit",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("fallback should contain %q, got:\n%s", want, result)
		}
	}
}

func TestPlannerPromptListsSpecialists(t *testing.T) {
	result, err := Planner.RenderPrompt(PlannerData{Objective: "o", Target: "t", Phases: testPhases})
	if err != nil {
		t.Fatalf("RenderPrompt failed: %v", err)
	}
	if !strings.Contains(result, "- recon: Reconnaissance (map the attack surface)") {
		t.Errorf("prompt should list the recon specialist, got:\n%s", result)
	}
}

func TestExploitFallbackWithoutCandidates(t *testing.T) {
	result, err := Exploit.RenderFallback(ExploitData{Objective: "o", Target: "10.0.0.1"})
	if err != nil {
		t.Fatalf("RenderFallback failed: %v", err)
	}
	if !strings.Contains(result, "Candidate Vulnerabilities: 0") {
		t.Error("fallback should report zero candidates")
	}
	if !strings.Contains(result, "No candidates reported") {
		t.Error("fallback should explain the empty candidate list")
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	data := ReportingData{Objective: "o", Target: "t", ReportDate: "2024-01-01", FindingsCount: 3}

	first, err := Reporting.RenderFallback(data)
	if err != nil {
		t.Fatalf("RenderFallback failed: %v", err)
	}
	second, err := Reporting.RenderFallback(data)
	if err != nil {
		t.Fatalf("RenderFallback failed: %v", err)
	}
	if first != second {
		t.Error("identical input should render identical output")
	}
	if !strings.Contains(first, "Findings: 3 issues identified") {
		t.Errorf("unexpected fallback:\n%s", first)
	}
}

func TestRenderSummary(t *testing.T) {
	result, err := RenderSummary(SummaryData{
		Iterations: 2,
		AgentsUsed: []string{"PlannerAgent", "ReconAgent"},
		Agents:     []string{"PlannerAgent has no memory yet."},
	})
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(result, "Total Iterations: 2") {
		t.Error("summary should contain the iteration count")
	}
	if !strings.Contains(result, "Agents Used: PlannerAgent, ReconAgent") {
		t.Error("summary should list agents in order")
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	if _, err := Render("bad", "Test {{.InvalidField", nil); err == nil {
		t.Error("Expected parse error, got nil")
	}
}

func TestRenderUnknownField(t *testing.T) {
	if _, err := Render("unknown", "Test {{.InvalidField}}", ReconData{}); err == nil {
		t.Error("Expected error for unknown field, got nil")
	}
}
