// Package metrics instruments a single classification run with Prometheus
// collectors. This is a batch CLI, not a server: collectors live in a
// private registry (never the global default) and Summary renders their
// values to a plain-text report after the run completes instead of
// serving them over HTTP.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Phase names recorded in PhaseDuration's "phase" label.
const (
	PhaseParse     = "parse"
	PhaseNormalize = "normalize"
	PhaseSaturate  = "saturate"
	PhaseEnumerate = "enumerate"
	PhaseWrite     = "write"
)

// Collectors holds the run's Prometheus instruments, registered against a
// private registry so this CLI never competes with a host process's
// default registry.
type Collectors struct {
	registry *prometheus.Registry

	PhaseDuration      *prometheus.HistogramVec
	Concepts           prometheus.Gauge
	Roles              prometheus.Gauge
	InferredSubsumptions prometheus.Gauge
	WorklistItems      *prometheus.CounterVec
}

// New registers and returns a fresh set of collectors.
func New() *Collectors {
	reg := prometheus.NewRegistry()

	c := &Collectors{
		registry: reg,
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "elsat_phase_duration_seconds",
			Help:    "Wall-clock duration of each classification pipeline phase.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"phase"}),
		Concepts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "elsat_concepts_total",
			Help: "Number of concept identifiers in the classified ontology.",
		}),
		Roles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "elsat_roles_total",
			Help: "Number of named roles in the classified ontology.",
		}),
		InferredSubsumptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "elsat_inferred_subsumptions_total",
			Help: "Total inferred subsumptions across all classified concepts.",
		}),
		WorklistItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elsat_worklist_items_total",
			Help: "Worklist items processed by the saturation driver, by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(c.PhaseDuration, c.Concepts, c.Roles, c.InferredSubsumptions, c.WorklistItems)
	return c
}

// ObservePhase records how long a pipeline phase took.
func (c *Collectors) ObservePhase(phase string, d time.Duration) {
	c.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// Summary writes a plain-text rendering of the collected metrics to w.
func (c *Collectors) Summary(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %s\n", mf.GetName(), labelsOf(m), valueOf(mf, m))
		}
	}
	return nil
}

func labelsOf(m *dto.Metric) string {
	labels := m.GetLabel()
	if len(labels) == 0 {
		return ""
	}
	s := "{"
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return s + "}"
}

func valueOf(mf *dto.MetricFamily, m *dto.Metric) string {
	switch mf.GetType() {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return ""
	}
}
