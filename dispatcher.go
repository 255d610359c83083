package inorder

import (
	"context"

	"github.com/ygrebnov/inorder/pool"
)

// source yields tasks in input order. ok == false ends the input.
type source[R any] func(ctx context.Context) (t Task[R], ok bool)

// dispatcher enumerates a source, assigns each task its input index and schedules
// it on the pool. It stops when the source ends, ctx is done or the pool refuses work.
// It never waits for tasks to finish; the lifecycle does.
type dispatcher[R any] struct {
	pool   pool.Pool
	worker *worker[R]
}

func newDispatcher[R any](p pool.Pool, w *worker[R]) *dispatcher[R] {
	return &dispatcher[R]{pool: p, worker: w}
}

// run returns the number of tasks scheduled.
func (d *dispatcher[R]) run(ctx context.Context, next source[R]) int {
	index := 0
	for ctx.Err() == nil {
		t, ok := next(ctx)
		if !ok {
			break
		}
		i := index
		if err := d.pool.Go(func() { d.worker.execute(ctx, i, t) }); err != nil {
			break
		}
		index++
	}
	return index
}

func sliceSource[R any](tasks []Task[R]) source[R] {
	i := 0
	return func(context.Context) (Task[R], bool) {
		if i >= len(tasks) {
			return nil, false
		}
		t := tasks[i]
		i++
		return t, true
	}
}

func channelSource[T, R any](in <-chan T, fn func(context.Context, T) (R, error)) source[R] {
	return func(ctx context.Context) (Task[R], bool) {
		select {
		case <-ctx.Done():
			return nil, false
		case v, ok := <-in:
			if !ok {
				return nil, false
			}
			return func(c context.Context) (R, error) { return fn(c, v) }, true
		}
	}
}
