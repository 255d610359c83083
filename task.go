package inorder

import (
	"context"
	"fmt"
)

// Task is one unit of work whose result takes its position in the output sequence.
// Use TaskFunc / TaskValue / TaskError to adapt common function signatures.
//
// Example:
//
//	t := TaskFunc(func(ctx context.Context) (int, error) { return 42, nil })
//	_ = t
type Task[R any] func(context.Context) (R, error)

// TaskFunc adapts func(ctx) (R, error) to Task[R].
func TaskFunc[R any](fn func(context.Context) (R, error)) Task[R] { return Task[R](fn) }

// TaskValue adapts func(ctx) R to Task[R].
func TaskValue[R any](fn func(context.Context) R) Task[R] {
	return func(ctx context.Context) (R, error) { return fn(ctx), nil }
}

// TaskError adapts func(ctx) error to Task[R].
// On success the task yields the zero value of R at its position.
func TaskError[R any](fn func(context.Context) error) Task[R] {
	return func(ctx context.Context) (R, error) { var zero R; return zero, fn(ctx) }
}

// Run executes the task, converting a panic into an ErrTaskPanicked error.
func (t Task[R]) Run(ctx context.Context) (result R, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero R
			result, err = zero, fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return t(ctx)
}
