package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/rankcache/core/cache"
	"github.com/codewandler/rankcache/ports/ranking"
)

func seededStore() *ranking.MemStore {
	s := ranking.NewMemStore()
	s.PutRanking(&ranking.LeagueRanking{LeagueID: "l1", Name: "Alpha", Season: "2026"})
	s.PutProfile(&ranking.UserProfile{UserID: "u1", Username: "ada"})
	return s
}

func TestApp_New_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestApp_New_PropagatesInvalidConfig(t *testing.T) {
	_, err := New(Config{
		Store:    seededStore(),
		Rankings: CacheConfig{MaxEntries: -1},
	})
	require.ErrorIs(t, err, cache.ErrInvalidConfig)
}

func TestApp_CachedLookups(t *testing.T) {
	store := seededStore()
	a, err := New(Config{Store: store})
	require.NoError(t, err)
	a.Run()
	defer a.Stop()

	r, err := a.Ranking(t.Context(), "l1")
	require.NoError(t, err)
	require.Equal(t, "Alpha", r.Name)

	p, err := a.Profile(t.Context(), "u1")
	require.NoError(t, err)
	require.Equal(t, "ada", p.Username)

	// A store update is invisible until invalidation.
	store.PutRanking(&ranking.LeagueRanking{LeagueID: "l1", Name: "Alpha Renamed"})
	r, err = a.Ranking(t.Context(), "l1")
	require.NoError(t, err)
	require.Equal(t, "Alpha", r.Name)

	a.InvalidateLeague("l1")
	r, err = a.Ranking(t.Context(), "l1")
	require.NoError(t, err)
	require.Equal(t, "Alpha Renamed", r.Name)
}

func TestApp_ForceRefresh(t *testing.T) {
	store := seededStore()
	a, err := New(Config{Store: store})
	require.NoError(t, err)
	defer a.Stop()

	_, err = a.Ranking(t.Context(), "l1")
	require.NoError(t, err)

	store.PutRanking(&ranking.LeagueRanking{LeagueID: "l1", Name: "Fresh"})
	r, err := a.Ranking(t.Context(), "l1", cache.WithForceRefresh())
	require.NoError(t, err)
	require.Equal(t, "Fresh", r.Name)
}

func TestApp_NotFoundPropagates(t *testing.T) {
	a, err := New(Config{Store: seededStore()})
	require.NoError(t, err)
	defer a.Stop()

	_, err = a.Ranking(t.Context(), "nope")
	require.ErrorIs(t, err, ranking.ErrNotFound)
	require.False(t, a.Rankings().Has(ranking.LeagueKey("nope")))
}

func TestApp_StopOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	a, err := New(Config{Context: ctx, Store: seededStore()})
	require.NoError(t, err)
	a.Run()

	cancel()
	// The watcher goroutine runs Stop on cancellation; calling it again
	// directly must stay safe.
	a.Stop()
}

func TestApp_FilterOptions(t *testing.T) {
	a, err := New(Config{Store: seededStore()})
	require.NoError(t, err)
	defer a.Stop()

	leagues := []ranking.LeagueRef{{ID: "l2", Name: "Beta"}, {ID: "l1", Name: "Alpha"}}
	got := a.FilterOptions(leagues)
	require.Equal(t, []ranking.LeagueRef{{ID: "l1", Name: "Alpha"}, {ID: "l2", Name: "Beta"}}, got.Leagues)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("RANKCACHE_RANKINGS_MAX_ENTRIES", "64")
	t.Setenv("RANKCACHE_RANKINGS_TTL", "30s")
	t.Setenv("RANKCACHE_PROFILES_SWEEP_INTERVAL", "5s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Rankings.MaxEntries)
	require.Equal(t, 30*time.Second, cfg.Rankings.TTL)
	require.Equal(t, 5*time.Second, cfg.Profiles.SweepInterval)
	require.Zero(t, cfg.Profiles.MaxEntries)
}
