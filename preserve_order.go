package inorder

// Reorderer (in-order release stage)
//
// Responsibility:
// - Accept (index, value) completions from many producer goroutines in any order
//   and release them to the consumer strictly in ascending index order, exactly once.
//
// State (private to the Reorderer, guarded by one mutex):
// - buffer: a min-heap of entries keyed by index (orderingBuffer),
// - cursor: the index of the next entry owed to the consumer; starts at 0, only grows,
// - out: the handoff channel to the Sequence, capacity WithCapacity (default 1).
//
// Submit:
// - Validate the index (>= 0, < n when n is known, not below the cursor, not already held).
// - Push into the buffer, then while buffer.min.index == cursor: pop, send on out, cursor++.
// - The send happens while the mutex is held. A full channel therefore blocks the
//   submitting producer and every producer queued on the mutex behind it. That is the
//   backpressure point: at most cap(out) in-order entries ever wait for the consumer.
// - The send also selects on quit, so an aborted stage never strands a producer.
//
// Finalize:
// - With the mutex held: if cursor == n and the buffer is empty, close(out).
// - Otherwise the producer lost an index: abort with ErrMissingIndex.
// - Unknown n (stream sources) is fixed to the cursor at Finalize; the buffer must be empty.
//
// Abort:
// - First caller wins (sync.Once): stores the terminal error and closes quit.
// - Never takes the mutex, so it can release a producer blocked inside the send.
// - Triggered by protocol violations, consumer Close (ErrAbandoned), operation
//   cancellation (ErrCancelled) and, with StopOnError, the first in-order error.
//
// Edge cases:
// - n == 0: Finalize closes out immediately; the first Next reports end-of-sequence.
// - Errors submitted with SubmitError occupy their position like values do.
// - After abort, Submit returns the terminal error and does not touch the buffer.

// entry is one completed item travelling from a producer to the consumer.
// err != nil means the item failed and carries no value.
type entry[T any] struct {
	index int
	value T
	err   error
}
