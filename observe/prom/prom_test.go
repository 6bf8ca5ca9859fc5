package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.DebugCapture(1, 10)
	m.DebugCapture(2, 10)
	m.DebugEvict(1, 10, false)
	m.DebugEvict(2, 10, true)
	m.DebugEvict(3, 10, true)
	m.DebugDemote(4, 10)
	m.DebugPromote(4, 10)
	m.WarningSaveExcluded(5, 100)
	m.Usage(300, 200)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{name: "captured", c: m.captured, want: 2},
		{name: "evicted-memory", c: m.evicted.WithLabelValues("memory"), want: 1},
		{name: "evicted-secondary", c: m.evicted.WithLabelValues("secondary"), want: 2},
		{name: "demoted", c: m.demoted, want: 1},
		{name: "promoted", c: m.promoted, want: 1},
		{name: "overflows", c: m.overflows, want: 0},
		{name: "excluded", c: m.excluded, want: 5},
		{name: "memory", c: m.memory, want: 300},
		{name: "secondary", c: m.secondary, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
