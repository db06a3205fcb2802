package sf

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// ErrReentrantFetch is returned when a fetch function calls back into the
// same group for the key it is currently fetching. Without the check the
// nested call would join its own pending flight and deadlock.
var ErrReentrantFetch = errors.New("reentrant fetch for pending key")

type pendingKeyCtx struct{ key string }

// Group deduplicates concurrent fetches for the same key. Only the first
// caller executes the fetch; everyone who joins while it is pending blocks
// and receives the identical result or the identical error. The pending
// entry is removed on settlement regardless of outcome, so a failed fetch
// is retried fresh by the next caller.
//
// Group never stores results; caching a successful value is the caller's
// job.
type Group[T any] struct {
	group singleflight.Group
}

// New creates a fetch group for type T.
func New[T any]() *Group[T] {
	return &Group[T]{}
}

// Do executes fn for key, deduplicating concurrent calls. The context
// passed to fn is tagged with the key; if fn (or anything it calls
// synchronously) re-enters Do for the same key with that context, Do fails
// with ErrReentrantFetch instead of deadlocking.
//
// Do does not cancel fn when ctx is cancelled; a slow fetch simply keeps
// its key pending.
func (g *Group[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if pending, _ := ctx.Value(pendingKeyCtx{key: key}).(bool); pending {
		return zero, ErrReentrantFetch
	}

	v, err, _ := g.group.Do(key, func() (any, error) {
		return fn(context.WithValue(ctx, pendingKeyCtx{key: key}, true))
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
