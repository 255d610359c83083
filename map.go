package inorder

import "context"

// Map applies fn to every item concurrently and returns a Sequence of the results
// in the order of items. It delegates to RunAll after wrapping each item into a
// Task that calls fn(ctx, item); all RunAll semantics and options apply.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) (*Sequence[R], error) {
	tasks := make([]Task[R], 0, len(items))
	for i := range items {
		item := items[i]
		tasks = append(tasks, TaskFunc[R](func(c context.Context) (R, error) { return fn(c, item) }))
	}
	return RunAll[R](ctx, tasks, opts...)
}
