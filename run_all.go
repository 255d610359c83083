package inorder

import (
	"context"
	"errors"
)

// RunAll executes tasks concurrently on a pool owned by the operation and returns
// a Sequence yielding their results in the order of tasks. It returns immediately;
// consumption overlaps execution, and a slow consumer throttles the workers through
// the handoff channel (WithCapacity). With WithDynamicPool every task starts at once
// and finished results are held until pulled.
//
// Semantics:
//   - A task error appears at the task's position (see Sequence.Next); with
//     WithStopOnError the first one in input order ends the sequence and cancels
//     the remaining tasks.
//   - Panics are recovered and reported as ErrTaskPanicked at the task's position.
//   - Cancelling ctx terminates the sequence with ErrCancelled once the values
//     already released have been pulled.
//   - Closing the sequence early cancels the tasks and releases all workers.
//
// A non-nil error is returned only for invalid options.
func RunAll[R any](ctx context.Context, tasks []Task[R], opts ...Option) (*Sequence[R], error) {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}
	op := startOperation[R](ctx, "inorder.RunAll", len(tasks), cfg)
	go op.run(sliceSource(tasks))
	return op.stage.Sequence(), nil
}

// Collect drains s and returns the successful values in order together with
// every item error and the terminal error, if any, joined with errors.Join.
func Collect[T any](s *Sequence[T]) ([]T, error) {
	var (
		results []T
		errs    []error
	)
	for v, err := range s.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, v)
	}
	return results, errors.Join(errs...)
}
