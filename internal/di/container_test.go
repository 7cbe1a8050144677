package di

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/config"
	"redcalibur/internal/infrastructure/logger"
)

type countingObserver struct {
	started, completed int
}

func (o *countingObserver) StageStarted(context.Context, entity.StageEvent)   { o.started++ }
func (o *countingObserver) StageCompleted(context.Context, entity.StageEvent) { o.completed++ }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Workflow.MaxIterations = 10
	cfg.Server.AllowedOrigins = []string{"*"}
	return cfg
}

func TestBuildRunsFullWorkflowOnFallbackReasoning(t *testing.T) {
	obs := &countingObserver{}
	c, err := Build(context.Background(), testConfig(), logger.NewNop(), obs)
	require.NoError(t, err)

	assert.Len(t, c.Agents.List(), 4)
	for _, info := range c.Workflow.Agents() {
		assert.False(t, info.AIEnabled, info.Name)
		for _, tool := range info.Tools {
			_, ok := c.Tools.Get(tool)
			assert.True(t, ok, "%s has no registered tool %s", info.Name, tool)
		}
	}

	res, err := c.Workflow.ExecuteWorkflow(context.Background(), input.WorkflowRequest{
		Objective: "Assess the external attack surface",
		Target:    "https://www.example.com/login",
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.FailedAgent)
	assert.Equal(t, 4, res.Iterations)
	assert.Equal(t, 4, obs.started)
	assert.Equal(t, 4, obs.completed)

	for i, role := range entity.WorkflowOrder {
		assert.Equal(t, role, res.History[i].Role)
		assert.True(t, res.History[i].Result.Success)
	}
	assert.Equal(t, entity.ToolWhois, res.History[1].Result.Tool)
	assert.Equal(t, "www.example.com", res.History[1].Result.Parameters.String("target"))

	n, err := testutil.GatherAndCount(c.Metrics.Registry(), "redcalibur_workflows_total", "redcalibur_stage_executions_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n, "one workflow series and one stage series per agent")
}

func TestHTTPServerUsesContainer(t *testing.T) {
	c, err := Build(context.Background(), testConfig(), logger.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, c.HTTPServer().Router())
}
