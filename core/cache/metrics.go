package cache

import "github.com/codewandler/rankcache/core/metrics"

// Metrics receives cache instrumentation. Implementations must be safe for
// concurrent use; see the prometheus adapter for the standard backend.
type Metrics interface {
	// Hit records a Get served from the entry store.
	Hit()
	// Miss records a Get that went to the fetch path (including forced
	// refreshes).
	Miss()
	// Eviction records an entry removed by the size bound (expired=false)
	// or by TTL (expired=true).
	Eviction(expired bool)
	// FetchDuration times one trip through the single-flight group.
	FetchDuration() metrics.Timer
	// FetchError records a failed fetch.
	FetchError()
	// Size reports the current entry count.
	Size(n int)
}

type nopMetrics struct{}

func (nopMetrics) Hit()                         {}
func (nopMetrics) Miss()                        {}
func (nopMetrics) Eviction(bool)                {}
func (nopMetrics) FetchDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) FetchError()                  {}
func (nopMetrics) Size(int)                     {}

// NopMetrics returns a Metrics implementation that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }
