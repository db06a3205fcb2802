package store

import (
	"container/list"
	"sync"
	"time"
)

// Entry is a single cached value together with its bookkeeping timestamps.
// LastAccessedAt is never before InsertedAt.
type Entry struct {
	Key            string
	Value          any
	InsertedAt     time.Time
	LastAccessedAt time.Time
}

type Opts struct {
	// MaxEntries bounds the number of live entries. Must be > 0.
	MaxEntries int
	// TTL is the maximum age of an entry, measured from insertion.
	// Entries older than TTL are reported as absent. Must be > 0.
	TTL time.Duration
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Store holds cache entries in a map for O(1) lookup and a doubly-linked
// list for recency ordering. Front = most recently used, back = least.
// It enforces the size bound on Put and treats entries older than TTL as
// absent; it does not fetch, schedule, or otherwise perform I/O.
//
// Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	items      map[string]*list.Element
	order      *list.List

	// onEvict, when set, is called (with the lock held) for every entry
	// removed by the size bound or by SweepExpired. expired distinguishes
	// TTL removals from LRU removals.
	onEvict func(e *Entry, expired bool)
}

func New(opts Opts) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		maxEntries: opts.MaxEntries,
		ttl:        opts.TTL,
		now:        opts.Now,
		items:      make(map[string]*list.Element),
		order:      list.New(),
	}
}

// OnEvict installs a callback invoked for entries removed by eviction or
// sweep. The callback runs with the store lock held and must not call back
// into the store.
func (s *Store) OnEvict(fn func(e *Entry, expired bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

// Has reports whether key holds a live (non-expired) entry. It does not
// touch recency.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return false
	}
	return !s.expiredLocked(el.Value.(*Entry), s.now())
}

// Get returns the entry for key, updating LastAccessedAt and moving it to
// the most-recently-used position. Expired entries are removed and reported
// as absent.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return Entry{}, false
	}

	now := s.now()
	e := el.Value.(*Entry)
	if s.expiredLocked(e, now) {
		s.removeLocked(el, true)
		return Entry{}, false
	}

	e.LastAccessedAt = now
	s.order.MoveToFront(el)
	return *e, true
}

// Put inserts or overwrites key, resetting both timestamps to now, and then
// evicts from the least-recently-used end until the size bound holds.
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if el, ok := s.items[key]; ok {
		e := el.Value.(*Entry)
		e.Value = value
		e.InsertedAt = now
		e.LastAccessedAt = now
		s.order.MoveToFront(el)
		return
	}

	el := s.order.PushFront(&Entry{
		Key:            key,
		Value:          value,
		InsertedAt:     now,
		LastAccessedAt: now,
	})
	s.items[key] = el

	for s.order.Len() > s.maxEntries {
		s.removeLocked(s.evictionCandidateLocked(), false)
	}
}

// Delete removes key if present. Removing an absent key is a no-op.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return false
	}
	s.order.Remove(el)
	delete(s.items, key)
	return true
}

// Clear drops all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
}

// Len counts physically present entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// SweepExpired removes every entry whose age meets or exceeds the TTL and
// returns how many were removed. Used by the periodic cleanup; the lazy
// check in Has/Get makes it a memory bound, not a correctness requirement.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	var next *list.Element
	for el := s.order.Front(); el != nil; el = next {
		next = el.Next()
		if s.expiredLocked(el.Value.(*Entry), now) {
			s.removeLocked(el, true)
			removed++
		}
	}
	return removed
}

func (s *Store) expiredLocked(e *Entry, now time.Time) bool {
	return now.Sub(e.InsertedAt) >= s.ttl
}

// evictionCandidateLocked picks the element to evict. The list is ordered by
// touch time, so every entry sharing the back entry's LastAccessedAt
// millisecond is contiguous at the back; among those the lowest InsertedAt
// goes first, which keeps eviction deterministic under same-millisecond
// timestamps.
func (s *Store) evictionCandidateLocked() *list.Element {
	back := s.order.Back()
	candidate := back
	ce := candidate.Value.(*Entry)
	for el := back.Prev(); el != nil; el = el.Prev() {
		e := el.Value.(*Entry)
		if e.LastAccessedAt.UnixMilli() != ce.LastAccessedAt.UnixMilli() {
			break
		}
		if e.InsertedAt.Before(ce.InsertedAt) {
			candidate, ce = el, e
		}
	}
	return candidate
}

func (s *Store) removeLocked(el *list.Element, expired bool) {
	e := el.Value.(*Entry)
	s.order.Remove(el)
	delete(s.items, e.Key)
	if s.onEvict != nil {
		s.onEvict(e, expired)
	}
}
