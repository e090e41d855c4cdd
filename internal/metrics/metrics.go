// Package metrics exposes allocation run metrics in the Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
)

// Run results used as the "result" label
const (
	ResultSuccess        = "success"
	ResultPartialFailure = "partial_failure"
	ResultFailed         = "failed"
	ResultBusy           = "busy"
)

type Recorder struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a recorder backed by its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_runs_total",
			Help: "Allocation runs by result",
		}, []string{"result"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_project_outcomes_total",
			Help: "Per-project allocation outcomes",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "allocation_run_duration_seconds",
			Help:    "Wall time of completed allocation runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	r.registry.MustRegister(
		r.runs,
		r.outcomes,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRun records a finished run. result may be nil when the run failed
// before any project was processed.
func (r *Recorder) ObserveRun(result *allocation.Result, err error) {
	r.runs.WithLabelValues(runLabel(err)).Inc()
	if result == nil {
		return
	}

	for _, outcome := range result.Outcomes {
		r.outcomes.WithLabelValues(string(outcome.Status)).Inc()
	}
	if d := result.Duration(); d > 0 {
		r.duration.Observe(d.Seconds())
	}
}

// ObserveBusy records a trigger rejected because a run was in progress
func (r *Recorder) ObserveBusy() {
	r.runs.WithLabelValues(ResultBusy).Inc()
}

// ObserveDuration records a run duration directly
func (r *Recorder) ObserveDuration(d time.Duration) {
	r.duration.Observe(d.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func runLabel(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, allocation.ErrPartialFailure):
		return ResultPartialFailure
	default:
		return ResultFailed
	}
}
