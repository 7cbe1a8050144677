package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

const (
	eventWorkflowStart    = "workflow_start"
	eventAgentStart       = "agent_start"
	eventAgentComplete    = "agent_complete"
	eventWorkflowComplete = "workflow_complete"
	eventError            = "error"
)

type streamEvent struct {
	Type      string             `json:"type"`
	RunID     string             `json:"run_id,omitempty"`
	Objective string             `json:"objective,omitempty"`
	Target    string             `json:"target,omitempty"`
	Agent     string             `json:"agent,omitempty"`
	Role      entity.AgentRole   `json:"role,omitempty"`
	Iteration int                `json:"iteration,omitempty"`
	Status    entity.StageStatus `json:"status,omitempty"`
	Thought   string             `json:"thought,omitempty"`
	Result    any                `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

var _ output.WorkflowObserver = (*streamObserver)(nil)

// streamObserver forwards stage events of one run to a websocket client.
// A failed write is logged and the run continues.
type streamObserver struct {
	conn   *websocket.Conn
	logger output.LoggerPort
	now    func() time.Time
}

func (o *streamObserver) send(ctx context.Context, event streamEvent) error {
	event.Timestamp = o.now()
	return wsjson.Write(ctx, o.conn, event)
}

func (o *streamObserver) StageStarted(ctx context.Context, e entity.StageEvent) {
	if err := o.send(ctx, streamEvent{
		Type:      eventAgentStart,
		RunID:     e.RunID,
		Agent:     e.Agent,
		Role:      e.Role,
		Iteration: e.Iteration,
	}); err != nil {
		o.logger.Warn("Failed to stream stage start", "agent", e.Agent, "error", err)
	}
}

func (o *streamObserver) StageCompleted(ctx context.Context, e entity.StageEvent) {
	event := streamEvent{
		Type:      eventAgentComplete,
		RunID:     e.RunID,
		Agent:     e.Agent,
		Role:      e.Role,
		Iteration: e.Iteration,
		Status:    e.Status,
	}
	if e.Result != nil {
		event.Result = e.Result
	}
	if e.Thought != nil {
		event.Thought = e.Thought.Analysis
	}
	if err := o.send(ctx, event); err != nil {
		o.logger.Warn("Failed to stream stage completion", "agent", e.Agent, "error", err)
	}
}

// handleWorkflowStream reads workflow requests from the client and streams
// each run's progress until the client disconnects.
func (s *Server) handleWorkflowStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.AllowedOrigins,
	})
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	obs := &streamObserver{conn: conn, logger: s.logger, now: s.now}

	for {
		var req workflowRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if !errors.Is(err, context.Canceled) {
					s.logger.Debug("Websocket read ended", "error", err)
				}
			}
			return
		}

		if err := req.validate(); err != nil {
			if err := obs.send(ctx, streamEvent{Type: eventError, Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := obs.send(ctx, streamEvent{Type: eventWorkflowStart, Objective: req.Objective, Target: req.Target}); err != nil {
			return
		}

		in := req.toInput()
		in.Observer = obs

		s.mu.Lock()
		res, err := s.workflow.ExecuteWorkflow(ctx, in)
		s.mu.Unlock()

		event := streamEvent{Type: eventWorkflowComplete}
		if err != nil {
			event = streamEvent{Type: eventError, Error: err.Error()}
		} else {
			event.RunID = res.RunID
			event.Result = res
		}
		if err := obs.send(ctx, event); err != nil {
			return
		}
	}
}
