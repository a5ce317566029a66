package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the global metrics container for an ambudispatch run.
type Metrics struct {
	// Pipeline stage metrics
	PipelineStageTotal     *prometheus.CounterVec
	PipelineStageDuration  *prometheus.HistogramVec
	PipelineStagesInFlight prometheus.Gauge

	// Stages tracks which pipeline stage names currently have work in
	// flight, backed by PipelineStagesInFlight.
	Stages *StageTracker

	// Solve metrics
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	SolveObjectiveValue  *prometheus.GaugeVec

	// Graph / scenario metrics
	GraphNodesTotal     *prometheus.HistogramVec
	GraphEdgesTotal     *prometheus.HistogramVec
	EmergenciesTotal    prometheus.Histogram
	EdgeUtilization     *prometheus.HistogramVec

	// System metrics
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Build info
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics initializes the metrics registry under the given
// namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		PipelineStageTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pipeline_stage_total",
				Help:      "Total number of pipeline stage completions",
			},
			[]string{"stage", "status"},
		),

		PipelineStageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pipeline_stage_duration_seconds",
				Help:      "Duration of each pipeline stage",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"stage"},
		),

		PipelineStagesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pipeline_stages_in_flight",
				Help:      "Number of pipeline stages currently executing",
			},
		),

		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of MILP solve operations, by terminal status",
			},
			[]string{"status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of MILP solve operations",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"status"},
		),

		SolveObjectiveValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_objective_value",
				Help:      "Objective value of the last optimal solve",
			},
			[]string{"run_id"},
		),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_nodes_total",
				Help:      "Number of nodes in prepared graphs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of edges in prepared graphs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		EmergenciesTotal: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emergencies_total",
				Help:      "Number of emergencies in the generated scenario",
				Buckets:   []float64{1, 3, 5, 10, 20, 50, 100},
			},
		),

		EdgeUtilization: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "edge_utilization_ratio",
				Help:      "Distribution of per-edge utilization across solved routes",
				Buckets:   []float64{0, .1, .25, .5, .75, .9, .95, 1},
			},
			[]string{"run_id"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "environment"},
		),
	}
	m.Stages = NewStageTracker(m.PipelineStagesInFlight)

	prometheus.MustRegister(NewRuntimeCollector(namespace, subsystem))

	defaultMetrics = m
	return m
}

// Get returns the global metrics registry, initializing it with
// default names if it has not been set up yet.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("ambudispatch", "")
	}
	return defaultMetrics
}

// RecordPipelineStage records completion of one pipeline stage.
func (m *Metrics) RecordPipelineStage(stage, status string, duration time.Duration) {
	m.PipelineStageTotal.WithLabelValues(stage, status).Inc()
	m.PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordSolveOperation records the outcome of a MILP solve.
func (m *Metrics) RecordSolveOperation(runID, status string, duration time.Duration, objectiveValue float64) {
	m.SolveOperationsTotal.WithLabelValues(status).Inc()
	m.SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
	if status == "optimal" {
		m.SolveObjectiveValue.WithLabelValues(runID).Set(objectiveValue)
	}
}

// RecordGraphSize records the size of a prepared graph.
func (m *Metrics) RecordGraphSize(operation string, nodes, edges int) {
	m.GraphNodesTotal.WithLabelValues(operation).Observe(float64(nodes))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// RecordScenarioSize records the number of emergencies generated.
func (m *Metrics) RecordScenarioSize(count int) {
	m.EmergenciesTotal.Observe(float64(count))
}

// RecordEdgeUtilization records a single edge's utilization ratio for a run.
func (m *Metrics) RecordEdgeUtilization(runID string, utilization float64) {
	m.EdgeUtilization.WithLabelValues(runID).Observe(utilization)
}

// SetServiceInfo sets build metadata as a gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts the metrics HTTP server on the given port.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write error is not actionable
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
