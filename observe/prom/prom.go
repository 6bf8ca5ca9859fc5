// Package prom реализация greenzone.Logger выставляющая метрики Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sirkon/greenzone"
)

const namespace = "greenzone"

// New регистрация метрик кэша в данном реестре.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		captured: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_captured_total",
			Help:      "Snapshots accepted by the cache.",
		}),
		evicted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_evicted_total",
			Help:      "Snapshots dropped to satisfy the total capacity.",
		}, []string{"location"}),
		demoted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_demoted_total",
			Help:      "Snapshots moved to the secondary store.",
		}),
		promoted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_promoted_total",
			Help:      "Snapshots moved back to memory.",
		}),
		overflows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_overflows_total",
			Help:      "Eviction rounds that left the cache over capacity.",
		}),
		excluded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_excluded_states_total",
			Help:      "Snapshots left out of saved projects.",
		}),
		memory: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_bytes",
			Help:      "Bytes of snapshots held in memory.",
		}),
		secondary: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "secondary_bytes",
			Help:      "Bytes consumed in the secondary store.",
		}),
	}
}

// Metrics метрики кэша.
type Metrics struct {
	captured  prometheus.Counter
	evicted   *prometheus.CounterVec
	demoted   prometheus.Counter
	promoted  prometheus.Counter
	overflows prometheus.Counter
	excluded  prometheus.Counter
	memory    prometheus.Gauge
	secondary prometheus.Gauge
}

// DebugCapture для реализации greenzone.Logger
func (m *Metrics) DebugCapture(int, int) {
	m.captured.Inc()
}

// DebugEvict для реализации greenzone.Logger
func (m *Metrics) DebugEvict(_ int, _ int, demoted bool) {
	location := "memory"
	if demoted {
		location = "secondary"
	}
	m.evicted.WithLabelValues(location).Inc()
}

// DebugDemote для реализации greenzone.Logger
func (m *Metrics) DebugDemote(int, int) {
	m.demoted.Inc()
}

// DebugPromote для реализации greenzone.Logger
func (m *Metrics) DebugPromote(int, int) {
	m.promoted.Inc()
}

// WarningCannotEvict для реализации greenzone.Logger
func (m *Metrics) WarningCannotEvict(uint64, uint64) {
	m.overflows.Inc()
}

// WarningSaveExcluded для реализации greenzone.Logger
func (m *Metrics) WarningSaveExcluded(excluded int, _ uint64) {
	m.excluded.Add(float64(excluded))
}

// Usage для реализации greenzone.Logger
func (m *Metrics) Usage(memory, secondary uint64) {
	m.memory.Set(float64(memory))
	m.secondary.Set(float64(secondary))
}

var _ greenzone.Logger = &Metrics{}
