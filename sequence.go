package inorder

import (
	"context"
	"errors"
	"iter"
	"time"

	"go.uber.org/atomic"
)

// State describes where a Sequence is in its lifecycle. Transitions only move forward.
type State int

const (
	// StateRunning: producers may still submit items.
	StateRunning State = iota
	// StateDraining: production is over, released items are still waiting to be pulled.
	StateDraining
	// StateClosed: nothing left to pull.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Sequence is the pull side of a Reorderer: it yields item results in input order,
// one per call. It is meant for a single consumer goroutine; only Close and State
// may be called from other goroutines.
type Sequence[T any] struct {
	r *Reorderer[T]

	// terminal result, owned by the consumer goroutine
	done bool
	err  error

	ended  atomic.Bool
	closed atomic.Bool
}

// Next blocks until the next item in input order is available.
//
// Results:
//   - (v, true, nil): the value of the next item.
//   - (zero, true, err): the next item failed with err; the sequence continues.
//   - (zero, false, nil): every item was delivered.
//   - (zero, false, err): the sequence was terminated by err (protocol violation,
//     cancellation, or the first item error with WithStopOnError).
//
// Once (zero, false, ...) is returned, every further call returns the same.
func (s *Sequence[T]) Next() (T, bool, error) {
	return s.next(nil)
}

// NextContext is like Next but gives up when ctx is done, returning ctx.Err().
// Giving up does not change the state of the sequence.
func (s *Sequence[T]) NextContext(ctx context.Context) (T, bool, error) {
	return s.next(ctx)
}

func (s *Sequence[T]) next(ctx context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, s.err
	}
	if s.closed.Load() {
		return s.terminate(nil)
	}

	var ctxDone <-chan struct{}
	if ctx != nil {
		ctxDone = ctx.Done()
	}

	start := time.Now()
	defer func() { s.r.inst.wait.Record(time.Since(start).Seconds()) }()

	select {
	case e, ok := <-s.r.out:
		return s.deliver(e, ok)
	case <-s.r.quit:
		// Items released before the abort are still delivered, in order.
		select {
		case e, ok := <-s.r.out:
			return s.deliver(e, ok)
		default:
		}
		return s.terminate(s.r.abortErr)
	case <-ctxDone:
		return zero, false, ctx.Err()
	}
}

func (s *Sequence[T]) deliver(e entry[T], ok bool) (T, bool, error) {
	if !ok {
		return s.terminate(nil)
	}
	s.r.delivered.Inc()
	if e.err != nil {
		if s.r.cfg.StopOnError {
			return s.terminate(e.err)
		}
		var zero T
		return zero, true, e.err
	}
	return e.value, true, nil
}

func (s *Sequence[T]) terminate(err error) (T, bool, error) {
	if s.closed.Load() && errors.Is(err, ErrAbandoned) {
		err = nil
	}
	s.done = true
	s.err = err
	s.ended.Store(true)
	var zero T
	return zero, false, err
}

// Close abandons the sequence. Producers blocked on handing over an item are
// released and further submissions fail with ErrAbandoned; the owning operation,
// if any, is cancelled. Subsequent Next calls report the end of the sequence.
// Close is idempotent and a no-op once the sequence has ended.
func (s *Sequence[T]) Close() {
	if s.ended.Load() || s.closed.Swap(true) {
		return
	}
	s.r.abort(ErrAbandoned)
}

// State reports the lifecycle state of the sequence.
func (s *Sequence[T]) State() State {
	if s.ended.Load() {
		return StateClosed
	}
	if s.r.isFinalized.Load() || s.r.aborted() != nil {
		if len(s.r.out) > 0 {
			return StateDraining
		}
		return StateClosed
	}
	return StateRunning
}

// Stats returns the counters of the underlying stage. Released - Delivered never
// exceeds the handoff capacity when read from the consumer goroutine.
func (s *Sequence[T]) Stats() Stats { return s.r.Stats() }

// All returns an iterator over the remaining items. Each step yields the item
// value and its error (see Next). A terminal error is yielded once as the last
// step. Breaking out of the loop closes the sequence.
func (s *Sequence[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := s.Next()
			if !ok {
				if err != nil {
					var zero T
					yield(zero, err)
				}
				return
			}
			if !yield(v, err) {
				s.Close()
				return
			}
		}
	}
}
