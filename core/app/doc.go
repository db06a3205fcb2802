// Package app wires the ranking caches together: one cache for league
// standings, one for user profiles, both reading through a single
// document-store port, with a shared lifecycle and log context.
//
// # Basic Usage
//
//	a, err := app.New(app.Config{
//	    Store:    docStore,
//	    Rankings: app.CacheConfig{MaxEntries: 256, TTL: 5 * time.Minute},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	a.Run()
//	defer a.Stop()
//
//	r, err := a.Ranking(ctx, "league-123")
//
// Cache tuning can come from the environment via [ConfigFromEnv]
// (RANKCACHE_RANKINGS_TTL, RANKCACHE_PROFILES_MAX_ENTRIES, ...).
package app
