// SPDX-License-Identifier: MIT
package nodetree

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Batch query errors.
var (
	ErrBatchQuery = errors.New("batch query failed")
)

// DescendantsOfEach performs [Tree.DescendantsOf] for every id on a pool of
// [Config.PoolSize] goroutines.
//
// The [Tree] must not be modified until this operation returns.
func (t *Tree[K, T]) DescendantsOfEach(ctx context.Context, ids []K) (map[K][]T, error) {
	return t.each(ctx, ids, t.DescendantsOf)
}

// AncestorsOfEach performs [Tree.AncestorsOf] for every id on a pool of [Config.PoolSize]
// goroutines.
//
// The [Tree] must not be modified until this operation returns.
func (t *Tree[K, T]) AncestorsOfEach(ctx context.Context, ids []K) (map[K][]T, error) {
	return t.each(ctx, ids, t.AncestorsOf)
}

// each fans query out over ids, collecting the results by id.
func (t *Tree[K, T]) each(ctx context.Context, ids []K, query func(K) []T) (results map[K][]T, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ctx.Err()) {
			err = fmt.Errorf("%w: %w", ErrBatchQuery, err)
		}
	}()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		panicked error
	)

	pool, err := ants.NewPool(t.cfg.PoolSize, ants.WithLogger(t.cfg.Logger))
	if err != nil {
		return
	}
	defer pool.Release()

	results = make(map[K][]T, len(ids))
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			break
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					panicked = fmt.Errorf("%w: (%v) %v", ErrPanicked, id, r)
					mu.Unlock()
				}
			}()

			if ctx.Err() != nil {
				return
			}

			resl := query(id)

			mu.Lock()
			results[id] = resl
			mu.Unlock()
		}
		if err = pool.Submit(task); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("batch of %d ids on %d workers", len(ids), t.cfg.PoolSize)
	}

	switch {
	case err != nil:
	case panicked != nil:
		err = panicked
	default:
		err = ctx.Err()
	}
	if err != nil {
		results = nil
	}

	return
}
