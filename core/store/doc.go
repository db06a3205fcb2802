// Package store provides the entry store underneath the ranking cache:
// a map plus recency list with LRU size bounding and TTL-based staleness.
//
// The store is deliberately dumb. It answers presence and staleness
// questions and keeps the size bound; fetch coordination and sweep
// scheduling live in the cache facade. Expired entries may remain
// physically present until the next access or sweep — Has and Get already
// report them as absent, so the size bound and TTL enforcement stay
// decoupled.
package store
