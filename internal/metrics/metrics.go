// Package metrics exposes solve instrumentation on a private prometheus
// registry: solve duration, incumbents seen, and the achieved objective. The
// CLI can dump the registry in the text exposition format after a run.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics collects solve observations. A nil *Metrics is a valid no-op
// receiver, so callers never guard their observation sites.
type Metrics struct {
	registry *prometheus.Registry

	solveDuration prometheus.Histogram
	solves        *prometheus.CounterVec
	incumbents    prometheus.Counter
	objective     prometheus.Gauge
}

// New builds a Metrics instance backed by a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_solve_duration_seconds",
			Help:    "Wall-clock duration of solver invocations.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_solves_total",
			Help: "Solver invocations by final status.",
		}, []string{"status"}),
		incumbents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_incumbents_total",
			Help: "Improved incumbent solutions observed during search.",
		}),
		objective: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roster_objective_value",
			Help: "Objective value of the last accepted solution.",
		}),
	}
	m.registry.MustRegister(m.solveDuration, m.solves, m.incumbents, m.objective)
	return m
}

// ObserveIncumbent counts one improved incumbent.
func (m *Metrics) ObserveIncumbent() {
	if m == nil {
		return
	}
	m.incumbents.Inc()
}

// ObserveSolve records the outcome of one solver invocation.
func (m *Metrics) ObserveSolve(status string, d time.Duration, objective int) {
	if m == nil {
		return
	}
	m.solveDuration.Observe(d.Seconds())
	m.solves.WithLabelValues(status).Inc()
	m.objective.Set(float64(objective))
}

// WriteText dumps the registry in the prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
