package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/domain/entity"
)

var (
	_ output.WorkflowObserver   = (*Collector)(nil)
	_ output.TransitionObserver = (*Collector)(nil)
)

// Collector owns a private registry so several instances can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	stagesTotal      *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	stageConfidence  *prometheus.HistogramVec
	transitionsTotal *prometheus.CounterVec
	workflowsTotal   *prometheus.CounterVec
	workflowDuration prometheus.Histogram
	workflowStages   prometheus.Histogram
	inFlight         prometheus.Gauge
}

func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		stagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_executions_total",
				Help:      "Agent stage executions by agent and outcome",
			},
			[]string{"agent", "status"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Agent stage duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"agent"},
		),
		stageConfidence: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_confidence",
				Help:      "Confidence reported by completed stages",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"agent"},
		),
		transitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "agent_state_transitions_total",
				Help:      "Agent state machine transitions",
			},
			[]string{"agent", "from", "to"},
		),
		workflowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflows_total",
				Help:      "Workflow runs by outcome",
			},
			[]string{"success"},
		),
		workflowDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_duration_seconds",
			Help:      "Workflow duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
		workflowStages: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_stages",
			Help:      "Stages executed per workflow run",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 10},
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workflows_in_flight",
			Help:      "Workflow runs currently executing",
		}),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) StageStarted(context.Context, entity.StageEvent) {}

func (c *Collector) StageCompleted(_ context.Context, e entity.StageEvent) {
	c.stagesTotal.WithLabelValues(e.Agent, string(e.Status)).Inc()
	c.stageDuration.WithLabelValues(e.Agent).Observe(e.Duration.Seconds())
	if e.Thought != nil {
		c.stageConfidence.WithLabelValues(e.Agent).Observe(e.Thought.Confidence)
	}
}

func (c *Collector) Transition(agent string, from, to entity.AgentState) {
	c.transitionsTotal.WithLabelValues(agent, string(from), string(to)).Inc()
}

func (c *Collector) RecordWorkflow(res *input.WorkflowResult, d time.Duration) {
	success := res != nil && res.Success
	c.workflowsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	c.workflowDuration.Observe(d.Seconds())
	if res != nil {
		c.workflowStages.Observe(float64(res.Iterations))
	}
}

var _ input.WorkflowExecutor = (*instrumented)(nil)

type instrumented struct {
	input.WorkflowExecutor
	collector *Collector
}

// Instrument wraps exec so every workflow run is counted and timed.
func Instrument(exec input.WorkflowExecutor, c *Collector) input.WorkflowExecutor {
	return &instrumented{WorkflowExecutor: exec, collector: c}
}

func (i *instrumented) ExecuteWorkflow(ctx context.Context, req input.WorkflowRequest) (*input.WorkflowResult, error) {
	i.collector.inFlight.Inc()
	defer i.collector.inFlight.Dec()

	start := time.Now()
	res, err := i.WorkflowExecutor.ExecuteWorkflow(ctx, req)
	i.collector.RecordWorkflow(res, time.Since(start))
	return res, err
}
