package httpapi

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"time"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/domain/entity"
)

type agentRequest struct {
	AgentType string         `json:"agent_type"`
	Objective string         `json:"objective"`
	Target    string         `json:"target"`
	Context   map[string]any `json:"context"`
}

type chatRequest struct {
	Message string         `json:"message"`
	Target  string         `json:"target"`
	Context map[string]any `json:"context"`
}

type workflowRequest struct {
	Objective     string `json:"objective"`
	Target        string `json:"target"`
	MaxIterations int    `json:"max_iterations"`
}

func (r workflowRequest) validate() error {
	if strings.TrimSpace(r.Objective) == "" {
		return errors.New("objective is required")
	}
	if strings.TrimSpace(r.Target) == "" {
		return errors.New("target is required")
	}
	if r.MaxIterations < 0 {
		return errors.New("max_iterations must not be negative")
	}
	return nil
}

func (r workflowRequest) toInput() input.WorkflowRequest {
	return input.WorkflowRequest{
		Objective:     r.Objective,
		Target:        r.Target,
		MaxIterations: r.MaxIterations,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "RedCalibur Agent API",
		"status":    "operational",
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
		"timestamp": s.now(),
	})
}

func (s *Server) handleAgentsStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	agents := s.workflow.Agents()
	s.mu.Unlock()

	aiEnabled := len(agents) > 0
	for _, a := range agents {
		aiEnabled = aiEnabled && a.AIEnabled
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents":       agents,
		"total_agents": len(agents),
		"ai_enabled":   aiEnabled,
		"timestamp":    s.now(),
	})
}

func (s *Server) handleExecuteAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	role, ok := entity.ParseAgentRole(strings.ToLower(req.AgentType))
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("agent %q not found", req.AgentType))
		return
	}

	payload := agentPayload(req.Objective, req.Target, req.Context)

	s.mu.Lock()
	resp, err := s.agents.Execute(r.Context(), input.AgentRequest{Role: role, Payload: payload})
	s.mu.Unlock()

	switch {
	case errors.Is(err, entity.ErrAgentNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case err != nil && resp == nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	case err != nil:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success":   false,
			"agent":     role,
			"error":     err.Error(),
			"response":  resp,
			"timestamp": s.now(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"agent":     role,
			"response":  resp,
			"timestamp": s.now(),
		})
	}
}

// handleChat answers a free-form message with the planner's analysis.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	s.mu.Lock()
	resp, err := s.agents.Execute(r.Context(), input.AgentRequest{
		Role:    entity.AgentRolePlanner,
		Payload: agentPayload(req.Message, req.Target, req.Context),
	})
	info, infoErr := s.workflow.AgentInfo(entity.AgentRolePlanner)
	s.mu.Unlock()

	switch {
	case errors.Is(err, entity.ErrAgentNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := map[string]any{
		"success":    true,
		"ai_enabled": infoErr == nil && info.AIEnabled,
		"timestamp":  s.now(),
	}
	switch {
	case resp.Thought != nil:
		body["response"] = resp.Thought.Analysis
	case resp.Result != nil:
		body["response"] = resp.Result.Message
	}
	if resp.Result != nil && resp.Result.Handoff != nil {
		body["suggested_agent"] = resp.Result.Handoff.TargetAgent
	}
	writeJSON(w, http.StatusOK, body)
}

func agentPayload(objective, target string, extra map[string]any) map[string]any {
	if target == "" {
		target = "not specified"
	}
	payload := map[string]any{
		entity.KeyObjective: objective,
		entity.KeyTarget:    target,
	}
	maps.Copy(payload, extra)
	return payload
}

func (s *Server) handleExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	res, err := s.workflow.ExecuteWorkflow(r.Context(), req.toInput())
	var summary string
	if err == nil {
		summary = s.workflow.Summary()
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     res.Success,
		"result":      res,
		"agents_used": len(res.History),
		"summary":     summary,
		"timestamp":   s.now(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	history := s.workflow.History()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"history":          history,
		"total_executions": len(history),
		"timestamp":        s.now(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.workflow.ClearHistory()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "History cleared",
		"timestamp": s.now(),
	})
}
