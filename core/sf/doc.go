// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent fetches of the same key.
//
// Single-flight ensures that at most one fetch is in-flight for a given key
// at a time. If multiple goroutines call [Group.Do] with the same key
// concurrently, only the first call executes the fetch; the rest block and
// receive the same result — value and error alike.
//
// This is the cache's defense against thundering herds: N concurrent cache
// misses for one key cost one round-trip to the document store, not N.
//
// # Usage
//
//	g := sf.New[*ranking.LeagueRanking]()
//
//	r, err := g.Do(ctx, "league:123", func(ctx context.Context) (*ranking.LeagueRanking, error) {
//	    return store.Rankings(ctx, "123")
//	})
//
// A fetch function must not call Do for its own key through the context it
// was given; doing so fails fast with [ErrReentrantFetch] rather than
// deadlocking.
package sf
