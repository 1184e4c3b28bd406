package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus collectors for loading and evaluation.
// All methods are safe on a nil receiver so callers can pass nil to disable metrics.
type Metrics struct {
	registry *prometheus.Registry

	BarsLoaded   *prometheus.CounterVec   // labels: backend
	LoadDuration *prometheus.HistogramVec // labels: backend
	LoadErrors   *prometheus.CounterVec   // labels: backend

	Evaluations        *prometheus.CounterVec // labels: indicator
	EvaluationDuration prometheus.Histogram
	CriteriaComputed   *prometheus.CounterVec // labels: criterion
}

// NewMetrics registers and returns all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BarsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argota_bars_loaded_total",
			Help: "Total bars loaded into a series (by backend)",
		}, []string{"backend"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "argota_load_duration_seconds",
			Help:    "Time spent querying and building a series",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argota_load_errors_total",
			Help: "Failed series loads (by backend)",
		}, []string{"backend"}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argota_indicator_values_total",
			Help: "Indicator values requested (by indicator type)",
		}, []string{"indicator"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argota_evaluation_duration_seconds",
			Help:    "Time spent evaluating all configured indicators",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		CriteriaComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argota_criteria_computed_total",
			Help: "Analysis criteria computed over a trading record (by criterion)",
		}, []string{"criterion"}),
	}

	m.registry.MustRegister(
		m.BarsLoaded,
		m.LoadDuration,
		m.LoadErrors,
		m.Evaluations,
		m.EvaluationDuration,
		m.CriteriaComputed,
	)

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// ObserveLoad records the outcome of one series load.
func (m *Metrics) ObserveLoad(backend string, bars int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	m.LoadDuration.WithLabelValues(backend).Observe(elapsed.Seconds())

	if err != nil {
		m.LoadErrors.WithLabelValues(backend).Inc()

		return
	}

	m.BarsLoaded.WithLabelValues(backend).Add(float64(bars))
}

// ObserveEvaluation records values requested from one indicator.
func (m *Metrics) ObserveEvaluation(indicator string, values int) {
	if m == nil {
		return
	}

	m.Evaluations.WithLabelValues(indicator).Add(float64(values))
}

// ObserveEvaluationDuration records the wall time of a full evaluation pass.
func (m *Metrics) ObserveEvaluationDuration(elapsed time.Duration) {
	if m == nil {
		return
	}

	m.EvaluationDuration.Observe(elapsed.Seconds())
}

// ObserveCriterion counts one computed criterion.
func (m *Metrics) ObserveCriterion(criterion string) {
	if m == nil {
		return
	}

	m.CriteriaComputed.WithLabelValues(criterion).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}

	return nil
}
