// Package inorder turns work that completes out of order on many goroutines into
// a sequential stream that yields results in input order, one at a time, with
// bounded buffering and backpressure.
//
// Core
//   - Reorderer: producers call Submit(index, value) or SubmitError(index, err) in
//     any order and from any goroutine, then Finalize once. Entries are held in a
//     min-heap keyed by index and released to a handoff channel strictly in index
//     order. The channel holds at most WithCapacity entries (default 1); a full
//     channel blocks the producer releasing the next entry.
//   - Sequence: the consumer pulls with Next, NextContext or All. Close abandons
//     the stream and releases every blocked producer.
//
// Helpers
//   - RunAll(ctx, tasks, opts...): execute tasks on a per-operation pool.
//   - Map(ctx, items, fn, opts...): RunAll over fn(ctx, item).
//   - MapStream(ctx, in, fn, opts...): like Map over a channel; the item count is
//     discovered when the channel closes.
//   - Collect(seq): drain a Sequence into a slice.
//
// Defaults
//   - Handoff capacity: 1
//   - Pool: fixed, runtime.GOMAXPROCS(0) workers (pond)
//   - StopOnError: false
//   - Logger: discard; Metrics: no-op; Tracer: otel global tracer
//
// Errors
// Producer protocol violations (duplicate index, index out of range, missing index,
// submit after finalize) abort the stage and surface to the consumer as a terminal
// error wrapping ErrProtocolViolation. Item errors keep their position in the stream
// and carry their index (ExtractIndex).
package inorder
