// Package ranking defines the domain side of the caching layer: the league
// standings and user profile documents, the Store port to the remote
// document database, the cache key scheme, and the fingerprint-memoized
// filter option derivation.
//
// The cache itself is entity-agnostic; everything entity-shaped lives here.
package ranking
