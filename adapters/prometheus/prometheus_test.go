package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCacheMetrics(reg, "rankings")

	require.NotNil(t, m)

	m.Hit()
	m.Miss()
	m.Eviction(false)
	m.Eviction(true)
	m.FetchError()
	m.Size(3)

	timer := m.FetchDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["rankcache_hits_total"])
	assert.True(t, names["rankcache_misses_total"])
	assert.True(t, names["rankcache_evictions_total"])
	assert.True(t, names["rankcache_fetch_duration_seconds"])
	assert.True(t, names["rankcache_entries"])
}

func TestNewCacheMetrics_TwoCaches(t *testing.T) {
	// rankings and profiles share metric families, distinguished by the
	// cache label.
	reg := prometheus.NewRegistry()
	NewCacheMetrics(reg, "rankings").Hit()
	NewCacheMetrics(reg, "profiles").Hit()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() == "rankcache_hits_total" {
			assert.Len(t, mf.GetMetric(), 2)
		}
	}
}
