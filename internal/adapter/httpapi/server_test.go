package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/domain/entity"
	"redcalibur/internal/infrastructure/logger"
)

type fakeWorkflow struct {
	agents   []entity.AgentInfo
	history  []entity.ExecutionHistoryEntry
	err      error
	requests []input.WorkflowRequest
	cleared  bool
}

func (f *fakeWorkflow) ExecuteWorkflow(ctx context.Context, req input.WorkflowRequest) (*input.WorkflowResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	event := entity.StageEvent{RunID: "run-1", Iteration: 1, Role: entity.AgentRolePlanner, Agent: "PlannerAgent"}
	if req.Observer != nil {
		req.Observer.StageStarted(ctx, event)
		event.Status = entity.StageStatusCompleted
		event.Thought = &entity.AgentThought{Analysis: "plan ready", Confidence: 0.9}
		event.Result = &entity.Result{Success: true, Agent: "PlannerAgent"}
		req.Observer.StageCompleted(ctx, event)
	}
	entry := entity.ExecutionHistoryEntry{Iteration: 1, Agent: "PlannerAgent", Role: entity.AgentRolePlanner}
	f.history = append(f.history, entry)
	return &input.WorkflowResult{
		RunID:      "run-1",
		Objective:  req.Objective,
		Target:     req.Target,
		Success:    true,
		Iterations: 1,
		History:    []entity.ExecutionHistoryEntry{entry},
	}, nil
}

func (f *fakeWorkflow) Summary() string { return "Total Iterations: 1" }

func (f *fakeWorkflow) AgentInfo(role entity.AgentRole) (entity.AgentInfo, error) {
	for _, a := range f.agents {
		if a.Role == role {
			return a, nil
		}
	}
	return entity.AgentInfo{}, entity.ErrAgentNotFound
}

func (f *fakeWorkflow) Agents() []entity.AgentInfo { return f.agents }

func (f *fakeWorkflow) ListAgents() []entity.AgentRole {
	roles := make([]entity.AgentRole, 0, len(f.agents))
	for _, a := range f.agents {
		roles = append(roles, a.Role)
	}
	return roles
}

func (f *fakeWorkflow) History() []entity.ExecutionHistoryEntry { return f.history }

func (f *fakeWorkflow) ClearHistory() {
	f.history = nil
	f.cleared = true
}

type fakeAgents struct {
	last input.AgentRequest
	resp *input.AgentResponse
	err  error
}

func (f *fakeAgents) Execute(_ context.Context, req input.AgentRequest) (*input.AgentResponse, error) {
	f.last = req
	return f.resp, f.err
}

func newTestServer(wf *fakeWorkflow, ag *fakeAgents) *Server {
	return NewServer(Deps{
		Workflow: wf,
		Agents:   ag,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
		Logger: logger.NewNop(),
	}, Config{AllowedOrigins: []string{"*"}})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, bytes.NewReader([]byte(body))))

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	h := newTestServer(&fakeWorkflow{}, &fakeAgents{}).Router()

	rec, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operational", body["status"])
}

func TestAgentsStatus(t *testing.T) {
	wf := &fakeWorkflow{agents: []entity.AgentInfo{
		{Role: entity.AgentRolePlanner, Name: "PlannerAgent", AIEnabled: true},
		{Role: entity.AgentRoleRecon, Name: "ReconAgent"},
	}}
	h := newTestServer(wf, &fakeAgents{}).Router()

	rec, body := do(t, h, http.MethodGet, "/api/agents/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, body["total_agents"])
	assert.Equal(t, false, body["ai_enabled"])
}

func TestExecuteAgent(t *testing.T) {
	t.Run("unknown agent", func(t *testing.T) {
		h := newTestServer(&fakeWorkflow{}, &fakeAgents{}).Router()
		rec, _ := do(t, h, http.MethodPost, "/api/agent/execute", `{"agent_type":"scanner","objective":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("payload defaults and context", func(t *testing.T) {
		ag := &fakeAgents{resp: &input.AgentResponse{
			Role:   entity.AgentRoleRecon,
			Result: &entity.Result{Success: true, Agent: "ReconAgent"},
		}}
		h := newTestServer(&fakeWorkflow{}, ag).Router()

		rec, body := do(t, h, http.MethodPost, "/api/agent/execute",
			`{"agent_type":"Recon","objective":"map","context":{"scan_type":"quick"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, entity.AgentRoleRecon, ag.last.Role)
		assert.Equal(t, "not specified", ag.last.Payload[entity.KeyTarget])
		assert.Equal(t, "map", ag.last.Payload[entity.KeyObjective])
		assert.Equal(t, "quick", ag.last.Payload[entity.KeyScanType])
	})

	t.Run("agent failure", func(t *testing.T) {
		ag := &fakeAgents{
			resp: &input.AgentResponse{Role: entity.AgentRoleExploit, State: entity.AgentStateError},
			err:  errors.New("tool failed"),
		}
		h := newTestServer(&fakeWorkflow{}, ag).Router()

		rec, body := do(t, h, http.MethodPost, "/api/agent/execute", `{"agent_type":"exploit","objective":"x","target":"t"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "tool failed", body["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestServer(&fakeWorkflow{}, &fakeAgents{}).Router()
		rec, _ := do(t, h, http.MethodPost, "/api/agent/execute", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChat(t *testing.T) {
	t.Run("planner analysis", func(t *testing.T) {
		ag := &fakeAgents{resp: &input.AgentResponse{
			Role:    entity.AgentRolePlanner,
			Thought: &entity.AgentThought{Analysis: "Start with passive recon", Confidence: 0.9},
			Result: &entity.Result{
				Success: true,
				Agent:   "PlannerAgent",
				Handoff: &entity.Handoff{TargetAgent: entity.AgentRoleRecon, Source: "PlannerAgent", Reason: "next"},
			},
		}}
		wf := &fakeWorkflow{agents: []entity.AgentInfo{{Role: entity.AgentRolePlanner, AIEnabled: true}}}
		h := newTestServer(wf, ag).Router()

		rec, body := do(t, h, http.MethodPost, "/api/chat",
			`{"message":"how do I assess this host?","context":{"scan_type":"quick"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Start with passive recon", body["response"])
		assert.Equal(t, "recon", body["suggested_agent"])
		assert.Equal(t, true, body["ai_enabled"])

		assert.Equal(t, entity.AgentRolePlanner, ag.last.Role)
		assert.Equal(t, "how do I assess this host?", ag.last.Payload[entity.KeyObjective])
		assert.Equal(t, "not specified", ag.last.Payload[entity.KeyTarget])
		assert.Equal(t, "quick", ag.last.Payload[entity.KeyScanType])
	})

	t.Run("empty message", func(t *testing.T) {
		ag := &fakeAgents{}
		h := newTestServer(&fakeWorkflow{}, ag).Router()

		rec, body := do(t, h, http.MethodPost, "/api/chat", `{"message":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "message is required", body["error"])
		assert.Empty(t, ag.last.Role)
	})

	t.Run("planner failure", func(t *testing.T) {
		ag := &fakeAgents{err: errors.New("think failed")}
		h := newTestServer(&fakeWorkflow{}, ag).Router()

		rec, _ := do(t, h, http.MethodPost, "/api/chat", `{"message":"plan","target":"example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "example.com", ag.last.Payload[entity.KeyTarget])
	})
}

func TestExecuteWorkflow(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		wf := &fakeWorkflow{}
		h := newTestServer(wf, &fakeAgents{}).Router()

		rec, body := do(t, h, http.MethodPost, "/api/workflow/execute", `{"objective":"assess"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "target is required", body["error"])
		assert.Empty(t, wf.requests)
	})

	t.Run("success", func(t *testing.T) {
		wf := &fakeWorkflow{}
		h := newTestServer(wf, &fakeAgents{}).Router()

		rec, body := do(t, h, http.MethodPost, "/api/workflow/execute",
			`{"objective":"assess","target":"example.com","max_iterations":2,"workflow_type":"full"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 1.0, body["agents_used"])
		assert.Equal(t, "Total Iterations: 1", body["summary"])
		require.Len(t, wf.requests, 1)
		assert.Equal(t, 2, wf.requests[0].MaxIterations)
		assert.Nil(t, wf.requests[0].Observer)
	})

	t.Run("executor error", func(t *testing.T) {
		wf := &fakeWorkflow{err: entity.ErrAgentNotFound}
		h := newTestServer(wf, &fakeAgents{}).Router()

		rec, _ := do(t, h, http.MethodPost, "/api/workflow/execute", `{"objective":"assess","target":"example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHistoryAndClear(t *testing.T) {
	wf := &fakeWorkflow{history: []entity.ExecutionHistoryEntry{{Iteration: 1, Agent: "PlannerAgent"}}}
	h := newTestServer(wf, &fakeAgents{}).Router()

	rec, body := do(t, h, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["total_executions"])

	rec, _ = do(t, h, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, wf.cleared)
	assert.Empty(t, wf.history)
}

func TestMetricsMounted(t *testing.T) {
	h := newTestServer(&fakeWorkflow{}, &fakeAgents{}).Router()

	rec, _ := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestWorkflowStream(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(newTestServer(&fakeWorkflow{}, &fakeAgents{}).Router())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/workflow", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{"objective": "assess", "target": "example.com"}))

	var types []string
	for {
		var event streamEvent
		require.NoError(t, wsjson.Read(ctx, conn, &event))
		types = append(types, event.Type)
		if event.Type == eventAgentComplete {
			assert.Equal(t, "plan ready", event.Thought)
			assert.Equal(t, entity.StageStatusCompleted, event.Status)
		}
		if event.Type == eventWorkflowComplete {
			assert.Equal(t, "run-1", event.RunID)
			break
		}
	}
	assert.Equal(t, []string{eventWorkflowStart, eventAgentStart, eventAgentComplete, eventWorkflowComplete}, types)

	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{"objective": "assess"}))
	var event streamEvent
	require.NoError(t, wsjson.Read(ctx, conn, &event))
	assert.Equal(t, eventError, event.Type)
	assert.Equal(t, "target is required", event.Error)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}
