// Package fanout runs independent units of work (one glyph, one source) in
// parallel and stops at the first failure.
package fanout

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ForEach calls fn for every item with at most limit calls in flight
// (limit <= 0 means unbounded). The first error cancels the context handed to
// the remaining calls, and is the error returned; later errors are dropped.
func ForEach[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, item T) error) error {
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	if limit > 0 {
		p = p.WithMaxGoroutines(limit)
	}

	for _, item := range items {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, item)
		})
	}

	return p.Wait()
}

// MapKeys calls fn for every key of m in parallel and collects the results
// under the same key. Each call sees only its own key, so fn may mutate the
// value it is handed without further locking.
func MapKeys[K comparable, V, R any](ctx context.Context, limit int, m map[K]V, fn func(ctx context.Context, key K, value V) (R, error)) (map[K]R, error) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	var mu sync.Mutex
	results := make(map[K]R, len(m))
	err := ForEach(ctx, limit, keys, func(ctx context.Context, key K) error {
		r, err := fn(ctx, key, m[key])
		if err != nil {
			return err
		}
		mu.Lock()
		results[key] = r
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
