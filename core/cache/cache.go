package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codewandler/rankcache/core/sf"
	"github.com/codewandler/rankcache/core/store"
)

// ErrInvalidConfig is returned by New for a non-positive MaxEntries, TTL or
// SweepInterval. Construction fails fast; a misconfigured cache never
// serves a single request.
var ErrInvalidConfig = errors.New("invalid cache config")

const (
	DefaultMaxEntries = 128
	DefaultTTL        = 5 * time.Minute
)

// FetchFunc loads the value for a missing key from the remote document
// store. Any error is treated the same way: propagated to every waiting
// caller and never cached. A FetchFunc must not call Get on the same cache
// for its own key.
type FetchFunc[V any] func(ctx context.Context, key string) (V, error)

type Config struct {
	// MaxEntries bounds the number of cached entries (LRU beyond that).
	// Zero means DefaultMaxEntries; negative is invalid.
	MaxEntries int
	// TTL is the maximum entry age measured from insertion. Zero means
	// DefaultTTL; negative is invalid.
	TTL time.Duration
	// SweepInterval is the period of the background expiry sweep. Zero
	// means TTL/5; negative is invalid.
	SweepInterval time.Duration
	// Name labels log lines and metrics, e.g. "rankings".
	Name string
	// Log defaults to slog.Default.
	Log *slog.Logger
	// Metrics defaults to a no-op implementation.
	Metrics Metrics

	// now overrides the clock in tests.
	now func() time.Time
}

// Cache is the query facade over the entry store, the single-flight fetch
// group and the sweep scheduler. It is the only surface callers use.
//
// A key moves ABSENT -> PENDING (first Get) -> PRESENT (fetch success) ->
// ABSENT again on failure, TTL expiry or invalidation. PENDING is shared:
// every Get that arrives while a fetch is in flight joins it and observes
// the same outcome.
type Cache[V any] struct {
	name    string
	log     *slog.Logger
	metrics Metrics
	fetch   FetchFunc[V]

	entries *store.Store
	flights *sf.Group[V]

	sweep *sweeper
	subs  *subscribers
}

// New validates cfg, applying defaults for zero values, and builds a cache
// around fetch. The sweep does not run until Start is called.
func New[V any](cfg Config, fetch FetchFunc[V]) (*Cache[V], error) {
	if fetch == nil {
		return nil, fmt.Errorf("%w: fetch function is required", ErrInvalidConfig)
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = cfg.TTL / 5
	}
	if cfg.MaxEntries < 0 {
		return nil, fmt.Errorf("%w: maxEntries must be positive, got %d", ErrInvalidConfig, cfg.MaxEntries)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfig, cfg.TTL)
	}
	if cfg.SweepInterval < 0 {
		return nil, fmt.Errorf("%w: sweepInterval must be positive, got %s", ErrInvalidConfig, cfg.SweepInterval)
	}
	if cfg.Name == "" {
		cfg.Name = "cache"
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NopMetrics()
	}

	c := &Cache[V]{
		name:    cfg.Name,
		log:     cfg.Log.With(slog.String("cache", cfg.Name)),
		metrics: cfg.Metrics,
		fetch:   fetch,
		entries: store.New(store.Opts{
			MaxEntries: cfg.MaxEntries,
			TTL:        cfg.TTL,
			Now:        cfg.now,
		}),
		flights: sf.New[V](),
		subs:    newSubscribers(),
	}
	c.sweep = newSweeper(cfg.SweepInterval, c.runSweep)

	c.entries.OnEvict(func(e *store.Entry, expired bool) {
		c.metrics.Eviction(expired)
		if expired {
			c.subs.publish(Event{Type: EventExpired, Key: e.Key})
		} else {
			c.subs.publish(Event{Type: EventEvicted, Key: e.Key})
		}
	})

	return c, nil
}

type getOptions struct {
	forceRefresh bool
}

type GetOption func(*getOptions)

// WithForceRefresh bypasses the cached entry and goes to the fetch path.
// If a fetch for the key is already in flight it is joined rather than
// duplicated; its result is at least as fresh as anything a second fetch
// could return.
func WithForceRefresh() GetOption {
	return func(o *getOptions) {
		o.forceRefresh = true
	}
}

// Get returns the value for key, fetching it through the single-flight
// group on a miss. A live cached entry is returned without I/O and its
// recency updated. On fetch success the value is written to the entry
// store (evicting as needed); on failure the error propagates and the
// store is untouched, so the next Get retries.
func (c *Cache[V]) Get(ctx context.Context, key string, opts ...GetOption) (V, error) {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !o.forceRefresh {
		if e, ok := c.entries.Get(key); ok {
			c.metrics.Hit()
			return e.Value.(V), nil
		}
	}
	c.metrics.Miss()

	timer := c.metrics.FetchDuration()
	v, err := c.flights.Do(ctx, key, func(ctx context.Context) (V, error) {
		return c.fetch(ctx, key)
	})
	timer.ObserveDuration()
	if err != nil {
		c.metrics.FetchError()
		c.log.Warn("fetch failed", slog.String("key", key), slog.Any("error", err))
		var zero V
		return zero, err
	}

	c.entries.Put(key, v)
	c.metrics.Size(c.entries.Len())
	c.subs.publish(Event{Type: EventStored, Key: key})
	return v, nil
}

// Has reports whether key holds a live entry, without touching recency and
// without fetching.
func (c *Cache[V]) Has(key string) bool {
	return c.entries.Has(key)
}

// Invalidate removes key from the entry store. It is idempotent and does
// not cancel an in-flight fetch for the key; a pending fetch still
// populates the store when it settles.
func (c *Cache[V]) Invalidate(key string) {
	if c.entries.Delete(key) {
		c.metrics.Size(c.entries.Len())
		c.subs.publish(Event{Type: EventInvalidated, Key: key})
	}
}

// InvalidateAll clears the entry store. In-flight fetches are unaffected
// and will populate fresh entries on settlement.
func (c *Cache[V]) InvalidateAll() {
	c.entries.Clear()
	c.metrics.Size(0)
	c.subs.publish(Event{Type: EventCleared})
}

// Len counts physically present entries, expired ones included.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Start launches the periodic expiry sweep. Calling Start on a running
// cache is a no-op.
func (c *Cache[V]) Start() {
	c.sweep.start()
}

// Stop cancels the sweep and waits for it to exit. Stop is idempotent and
// safe to call on a cache that was never started. The owner must call Stop
// on teardown so the sweep goroutine does not outlive it.
func (c *Cache[V]) Stop() {
	c.sweep.stop()
}

// Subscribe registers an event channel with the given buffer. Events are
// delivered best-effort: when the buffer is full the event is dropped, so
// a slow subscriber can never block cache operations. The returned func
// unregisters and closes the channel.
func (c *Cache[V]) Subscribe(buffer int) (<-chan Event, func()) {
	return c.subs.subscribe(buffer)
}

func (c *Cache[V]) runSweep() {
	if n := c.entries.SweepExpired(); n > 0 {
		c.metrics.Size(c.entries.Len())
		c.log.Debug("sweep removed expired entries", slog.Int("removed", n))
	}
}
