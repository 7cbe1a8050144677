package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"golang.org/x/sync/errgroup"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
)

const serviceName = "redcalibur"

type Deps struct {
	Workflow input.WorkflowExecutor
	Agents   input.AgentExecutor
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  output.LoggerPort
}

type Config struct {
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	// AccessLog enables per-request logging.
	AccessLog bool
}

// Server exposes the orchestrator over HTTP and a websocket stream. Workflow
// and agent executions are serialized since the agents keep per-run state.
type Server struct {
	workflow input.WorkflowExecutor
	agents   input.AgentExecutor
	metrics  http.Handler
	logger   output.LoggerPort
	cfg      Config

	mu      sync.Mutex
	now     func() time.Time
	started time.Time
}

func NewServer(deps Deps, cfg Config) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		workflow: deps.Workflow,
		agents:   deps.Agents,
		metrics:  deps.Metrics,
		logger:   deps.Logger.WithField("component", "http"),
		cfg:      cfg,
		now:      time.Now,
		started:  time.Now(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.AccessLog {
		r.Use(httplog.RequestLogger(httplog.NewLogger(serviceName, httplog.Options{
			JSON:    true,
			Concise: true,
		})))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/agents/status", s.handleAgentsStatus)
		r.Post("/agent/execute", s.handleExecuteAgent)
		r.Post("/workflow/execute", s.handleExecuteWorkflow)
		r.Post("/chat", s.handleChat)
		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
	})

	r.Get("/ws/workflow", s.handleWorkflowStream)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
