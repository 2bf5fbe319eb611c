package metrics

import "github.com/prometheus/client_golang/prometheus"

// CatalogMetrics exposes counters/histograms for the pricing catalog.
type CatalogMetrics struct {
	loadsTotal       *prometheus.CounterVec
	savesTotal       *prometheus.CounterVec
	slugLookupsTotal *prometheus.CounterVec
	transformLatency prometheus.Histogram
}

func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	m := &CatalogMetrics{
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Total catalog reads",
		}, []string{"status"}),
		savesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "catalog",
			Name:      "saves_total",
			Help:      "Total catalog bulk saves",
		}, []string{"status"}),
		slugLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "catalog",
			Name:      "slug_lookups_total",
			Help:      "Total per-slug service lookups",
		}, []string{"outcome"}),
		transformLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carebridge",
			Subsystem: "catalog",
			Name:      "transform_latency_seconds",
			Help:      "Latency of the admin-to-customer catalog projection",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.loadsTotal, m.savesTotal, m.slugLookupsTotal, m.transformLatency)
	return m
}

func (m *CatalogMetrics) ObserveLoad(status string) {
	if m == nil {
		return
	}
	m.loadsTotal.WithLabelValues(status).Inc()
}

func (m *CatalogMetrics) ObserveSave(status string) {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues(status).Inc()
}

func (m *CatalogMetrics) ObserveSlugLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.slugLookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *CatalogMetrics) ObserveTransformLatency(seconds float64) {
	if m == nil {
		return
	}
	m.transformLatency.Observe(seconds)
}
