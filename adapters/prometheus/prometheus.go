// Package prometheus provides the Prometheus implementation of the cache
// metrics interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/rankcache/core/cache"
	"github.com/codewandler/rankcache/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for fetch latency (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

// cacheMetrics implements cache.Metrics using Prometheus. One instance
// serves one cache; the cache name becomes a constant label so rankings
// and profiles share metric families.
type cacheMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evictions     *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchErrors   prometheus.Counter
	size          prometheus.Gauge
}

// NewCacheMetrics creates a Prometheus implementation of cache.Metrics for
// the cache with the given name.
func NewCacheMetrics(reg prometheus.Registerer, name string) cache.Metrics {
	labels := prometheus.Labels{"cache": name}

	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rankcache_hits_total",
			Help:        "Gets served from the entry store",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rankcache_misses_total",
			Help:        "Gets that went to the fetch path",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rankcache_evictions_total",
			Help:        "Entries removed by the size bound or by TTL",
			ConstLabels: labels,
		}, []string{"reason"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "rankcache_fetch_duration_seconds",
			Help:        "Document store fetch time in seconds",
			Buckets:     defaultBuckets,
			ConstLabels: labels,
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rankcache_fetch_errors_total",
			Help:        "Failed document store fetches",
			ConstLabels: labels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "rankcache_entries",
			Help:        "Current number of cached entries",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		m.fetchDuration,
		m.fetchErrors,
		m.size,
	)

	return m
}

func (m *cacheMetrics) Hit()  { m.hits.Inc() }
func (m *cacheMetrics) Miss() { m.misses.Inc() }

func (m *cacheMetrics) Eviction(expired bool) {
	reason := "lru"
	if expired {
		reason = "ttl"
	}
	m.evictions.WithLabelValues(reason).Inc()
}

func (m *cacheMetrics) FetchDuration() metrics.Timer {
	return newTimer(m.fetchDuration)
}

func (m *cacheMetrics) FetchError() { m.fetchErrors.Inc() }

func (m *cacheMetrics) Size(n int) { m.size.Set(float64(n)) }

var _ cache.Metrics = (*cacheMetrics)(nil)
