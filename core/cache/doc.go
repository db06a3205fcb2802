// Package cache implements the ranking-data caching layer: a bounded,
// TTL-invalidated, single-flight in-process cache between a UI-facing
// query layer and a remote document store.
//
// [Cache] composes three pieces:
//
//   - an entry store with LRU size bounding and TTL staleness
//     ([github.com/codewandler/rankcache/core/store])
//   - a single-flight fetch group so N concurrent misses for one key cost
//     one fetch ([github.com/codewandler/rankcache/core/sf])
//   - a periodic sweep that bounds memory for keys never read again
//
// # Usage
//
//	c, err := cache.New[*ranking.LeagueRanking](cache.Config{
//	    Name:       "rankings",
//	    MaxEntries: 256,
//	    TTL:        5 * time.Minute,
//	}, func(ctx context.Context, key string) (*ranking.LeagueRanking, error) {
//	    return store.Rankings(ctx, ranking.ParseLeagueKey(key))
//	})
//	if err != nil {
//	    return err
//	}
//	c.Start()
//	defer c.Stop()
//
//	r, err := c.Get(ctx, ranking.LeagueKey("123"))
//
// Fetch failures are never cached: a failed key stays absent and the next
// Get retries. Invalidation never cancels in-flight fetches.
//
// The cache imposes no fetch timeout; wrap the fetch function if one is
// needed.
package cache
