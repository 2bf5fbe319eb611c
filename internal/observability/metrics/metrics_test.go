package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalogMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)

	m.ObserveLoad("ok")
	m.ObserveLoad("ok")
	m.ObserveSave("error")
	m.ObserveSlugLookup(true)
	m.ObserveSlugLookup(false)
	m.ObserveTransformLatency(0.002)

	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("ok")); got != 2 {
		t.Fatalf("expected 2 ok loads, got %v", got)
	}
	if got := testutil.ToFloat64(m.savesTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected 1 failed save, got %v", got)
	}
	if got := testutil.ToFloat64(m.slugLookupsTotal.WithLabelValues("miss")); got != 1 {
		t.Fatalf("expected 1 miss, got %v", got)
	}
}

func TestCatalogMetricsNilSafe(t *testing.T) {
	var m *CatalogMetrics
	m.ObserveLoad("ok")
	m.ObserveSave("ok")
	m.ObserveSlugLookup(true)
	m.ObserveTransformLatency(0.1)
}
