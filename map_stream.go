package inorder

import "context"

// MapStream consumes items from in, applies fn concurrently and returns a Sequence
// of the results in the order items were received. The number of items is not known
// up front: the sequence ends after in is closed and every received item was delivered.
//
// Intake stops when in is closed, ctx is done, or the operation is stopped
// (WithStopOnError, Sequence.Close). The caller keeps ownership of in; items left in
// it after intake stopped are not read. With the default fixed pool a slow consumer
// throttles intake (see WithFixedPool); WithDynamicPool reads in without a bound.
func MapStream[T, R any](
	ctx context.Context,
	in <-chan T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) (*Sequence[R], error) {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}
	op := startOperation[R](ctx, "inorder.MapStream", Unknown, cfg)
	go op.run(channelSource(in, fn))
	return op.stage.Sequence(), nil
}
