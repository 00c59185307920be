// Package lazy provides a process-wide value that is built on first use.
//
// Concurrent first callers share a single in-flight initialization and all
// observe its result. A successful result is kept for the life of the Value;
// a failed one is handed to every caller that waited on it and then dropped,
// so the next Get runs the initializer again.
package lazy

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Value holds a lazily built T.
type Value[T any] struct {
	init func(ctx context.Context) (T, error)

	mu    sync.RWMutex
	ready bool
	val   T

	group singleflight.Group
}

// New returns a Value that builds itself with init on first Get.
func New[T any](init func(ctx context.Context) (T, error)) *Value[T] {
	return &Value[T]{init: init}
}

// Get returns the value, building it if needed. init receives the starting
// caller's context values without its cancellation, so one caller giving up
// does not fail the others. Each caller stops waiting when its own ctx ends.
func (v *Value[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if val, ok := v.Peek(); ok {
		return val, nil
	}

	ch := v.group.DoChan("init", func() (any, error) {
		if val, ok := v.Peek(); ok {
			return val, nil
		}

		val, err := v.init(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		v.mu.Lock()
		v.val, v.ready = val, true
		v.mu.Unlock()

		return val, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek returns the value without building it.
func (v *Value[T]) Peek() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val, v.ready
}
