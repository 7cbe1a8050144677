package progress

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

var _ output.WorkflowObserver = (*Console)(nil)

// Console renders workflow stages as they run.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	header  *color.Color
	thought *color.Color
	tool    *color.Color
	ok      *color.Color
	fail    *color.Color
	dim     *color.Color
}

func NewConsole(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		thought: color.New(color.FgBlue),
		tool:    color.New(color.FgYellow, color.Bold),
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, col := range []*color.Color{c.header, c.thought, c.tool, c.ok, c.fail, c.dim} {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) StageStarted(_ context.Context, e entity.StageEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.Fprintf(c.out, "\n━━━ Stage %d: %s (%s) ━━━\n", e.Iteration, e.Agent, e.Role)
}

func (c *Console) StageCompleted(_ context.Context, e entity.StageEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Thought != nil {
		c.thought.Fprint(c.out, "Thought: ")
		c.dim.Fprintf(c.out, "%s\n", truncate(e.Thought.Analysis, 300))
		c.dim.Fprintf(c.out, "   Confidence: %.0f%%\n", e.Thought.Confidence*100)
	}
	if e.Action != nil {
		icon, name := toolDisplay(e.Action.Tool)
		c.tool.Fprintf(c.out, "%s %s\n", icon, name)
		if args := e.Action.Parameters.Format(); args != "" {
			c.dim.Fprintf(c.out, "   %s\n", truncate(args, 120))
		}
	}

	switch {
	case e.Status == entity.StageStatusFailed:
		msg := "stage failed"
		if e.Result != nil && e.Result.Error != "" {
			msg = e.Result.Error
		}
		c.fail.Fprint(c.out, "✗ Error: ")
		c.dim.Fprintln(c.out, truncate(msg, 300))
	case e.Result != nil:
		c.ok.Fprintf(c.out, "✓ %s\n", truncate(e.Result.Message, 150))
	}
}

// WorkflowFinished prints the closing line of a run.
func (c *Console) WorkflowFinished(res *input.WorkflowResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res == nil {
		return
	}
	if res.Success {
		c.ok.Fprintf(c.out, "\nWorkflow %s completed in %d stages\n", res.RunID, res.Iterations)
		return
	}
	c.fail.Fprintf(c.out, "\nWorkflow %s stopped at %s after %d stages\n", res.RunID, res.FailedAgent, res.Iterations)
}

func toolDisplay(tool entity.ToolName) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolTaskDecomposition:       {"🗺️", "Task decomposition"},
		entity.ToolWhois:                   {"🔎", "WHOIS lookup"},
		entity.ToolDNSEnum:                 {"🌐", "DNS enumeration"},
		entity.ToolNmap:                    {"📡", "Port scan"},
		entity.ToolSubfinder:               {"🧭", "Subdomain discovery"},
		entity.ToolVulnerabilityAssessment: {"🛡️", "Vulnerability assessment"},
		entity.ToolGenerateReport:          {"📝", "Report generation"},
	}
	if d, ok := displays[tool]; ok {
		return d[0], d[1]
	}
	return "🔧", string(tool)
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
