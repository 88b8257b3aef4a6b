// Package observability exposes Prometheus metrics for the parser and the
// session runtime.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors the engine and HTTP adapter report into.
type Metrics struct {
	registry *prometheus.Registry

	ParsesTotal   prometheus.Counter
	ParseFailures prometheus.Counter
	ParseDuration prometheus.Histogram
	StatesParsed  prometheus.Gauge
	EventsTotal   *prometheus.CounterVec
	SessionsTotal prometheus.Counter
}

// NewMetrics creates a self-contained metrics set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ParsesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "umlstate",
			Name:      "parses_total",
			Help:      "Number of model parse attempts.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "umlstate",
			Name:      "parse_failures_total",
			Help:      "Number of parse attempts that failed.",
		}),
		ParseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "umlstate",
			Name:      "parse_duration_seconds",
			Help:      "Time spent flattening models.",
			Buckets:   prometheus.DefBuckets,
		}),
		StatesParsed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "umlstate",
			Name:      "states_parsed",
			Help:      "State records produced by the most recent parse.",
		}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "umlstate",
			Name:      "events_total",
			Help:      "Events dispatched to sessions, by outcome.",
		}, []string{"outcome"}),
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "umlstate",
			Name:      "sessions_total",
			Help:      "Sessions started.",
		}),
	}
}

// ObserveParse records one parse attempt.
func (m *Metrics) ObserveParse(start time.Time, states int, err error) {
	m.ParsesTotal.Inc()
	m.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.ParseFailures.Inc()
		return
	}
	m.StatesParsed.Set(float64(states))
}

// ObserveEvent records one dispatched event by outcome
// ("accepted" or "rejected").
func (m *Metrics) ObserveEvent(outcome string) {
	m.EventsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
