package di

import (
	"context"
	"fmt"

	"redcalibur/internal/adapter/httpapi"
	"redcalibur/internal/adapter/tool"
	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/application/service"
	"redcalibur/internal/application/usecase"
	"redcalibur/internal/infrastructure/config"
	"redcalibur/internal/infrastructure/env"
	"redcalibur/internal/infrastructure/llm"
	"redcalibur/internal/infrastructure/logger"
	"redcalibur/internal/infrastructure/metrics"
	"redcalibur/internal/usecase/agents/exploit"
	"redcalibur/internal/usecase/agents/planner"
	"redcalibur/internal/usecase/agents/react"
	"redcalibur/internal/usecase/agents/recon"
	"redcalibur/internal/usecase/agents/reporting"
	"redcalibur/internal/usecase/orchestrator"
)

const metricsNamespace = "redcalibur"

type Container struct {
	Config        *config.Config
	Logger        output.LoggerPort
	Metrics       *metrics.Collector
	Tools         output.ToolRegistry
	Agents        output.AgentRegistry
	Workflow      input.WorkflowExecutor
	AgentExecutor input.AgentExecutor
}

type Options struct {
	// ConfigPath overrides ./config.yaml.
	ConfigPath string
	// Observers receive stage events of every workflow run.
	Observers []output.WorkflowObserver
}

// NewContainer loads .env files and configuration, then wires the application.
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	envService := env.NewEnvService()

	cfg, err := config.Load(opts.ConfigPath, envService)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLoggerAdapter(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log.Debug("Environment loaded", "app_env", envService.AppEnv(), "files", envService.LoadedFiles())

	c, err := Build(ctx, cfg, log, opts.Observers...)
	if err != nil {
		log.Close()
		return nil, err
	}
	return c, nil
}

// Build wires the application from an already loaded configuration.
func Build(ctx context.Context, cfg *config.Config, log output.LoggerPort, observers ...output.WorkflowObserver) (*Container, error) {
	backend, err := llm.New(ctx, cfg.Reasoning, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoning backend: %w", err)
	}
	reasoning := react.NewReasoning(backend, log)

	tools := service.NewToolRegistry()
	tool.RegisterSimulated(tools, log)
	dispatcher := service.NewToolDispatcher(tools, log, service.DispatcherConfig{
		RequestDelay: cfg.Tools.RequestDelay,
		Burst:        cfg.Tools.Burst,
	})

	collector := metrics.NewCollector(metricsNamespace)

	deps := react.Deps{Reasoning: reasoning, Tools: dispatcher, Logger: log}
	agents := service.NewAgentRegistry(
		react.New(planner.New(), deps, react.WithTransitionObserver(collector)),
		react.New(recon.New(), deps, react.WithTransitionObserver(collector)),
		react.New(exploit.New(), deps, react.WithTransitionObserver(collector)),
		react.New(reporting.New(), deps, react.WithTransitionObserver(collector)),
	)

	orchOpts := []orchestrator.Option{orchestrator.WithObserver(collector)}
	for _, obs := range observers {
		orchOpts = append(orchOpts, orchestrator.WithObserver(obs))
	}
	orch := orchestrator.New(agents, log, orchestrator.Config{
		MaxIterations:  cfg.Workflow.MaxIterations,
		FollowHandoffs: cfg.Workflow.FollowHandoffs,
	}, orchOpts...)

	log.Info("Application wired",
		"reasoning_provider", cfg.Reasoning.Provider,
		"reasoning_enabled", reasoning.Enabled(),
		"tools", len(tools.All()),
		"follow_handoffs", cfg.Workflow.FollowHandoffs,
	)

	return &Container{
		Config:        cfg,
		Logger:        log,
		Metrics:       collector,
		Tools:         tools,
		Agents:        agents,
		Workflow:      metrics.Instrument(orch, collector),
		AgentExecutor: usecase.NewExecuteAgentUseCase(agents, log),
	}, nil
}

func (c *Container) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.Deps{
		Workflow: c.Workflow,
		Agents:   c.AgentExecutor,
		Metrics:  c.Metrics.Handler(),
		Logger:   c.Logger,
	}, httpapi.Config{
		AllowedOrigins:  c.Config.Server.AllowedOrigins,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
		AccessLog:       true,
	})
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
