// Package prometheus exports extraction outcomes as Prometheus metrics.
package prometheus

import (
	"net/http"

	"github.com/fwojciec/artex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "artex"

var _ artex.Observer = (*Metrics)(nil)

// Metrics counts strategy wins, applied recoveries and failures. Each
// Metrics owns its registry, so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	StrategySelections *prometheus.CounterVec
	Recoveries         *prometheus.CounterVec
	Failures           *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		StrategySelections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_selected_total",
			Help:      "Extractions won by each strategy",
		}, []string{"strategy"}),
		Recoveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovery_applied_total",
			Help:      "Recovery passes that changed the content",
		}, []string{"pass"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failed_total",
			Help:      "Failed extractions by error code",
		}, []string{"code"}),
	}
}

// StrategySelected implements artex.Observer.
func (m *Metrics) StrategySelected(strategy artex.Strategy) {
	m.StrategySelections.WithLabelValues(string(strategy)).Inc()
}

// RecoveryApplied implements artex.Observer.
func (m *Metrics) RecoveryApplied(name string) {
	m.Recoveries.WithLabelValues(name).Inc()
}

// ExtractionFailed implements artex.Observer.
func (m *Metrics) ExtractionFailed(code string) {
	m.Failures.WithLabelValues(code).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
