package inorder

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"
	"go.uber.org/atomic"

	"github.com/ygrebnov/inorder/metrics"
)

// Unknown is passed to NewReorderer when the number of items is only known
// once the producer side is done (stream sources).
const Unknown = -1

// Stats is a point-in-time view of a Reorderer. Fields are read independently
// and may be mutually inconsistent while producers are running.
type Stats struct {
	// Submitted counts Submit/SubmitError calls, including rejected ones.
	Submitted int64
	// Released counts entries handed to the consumer channel. It equals the cursor.
	Released int64
	// Delivered counts entries the consumer has received.
	Delivered int64
	// Pending is the number of out-of-order entries held in the buffer.
	Pending int
	// MaxPending is the high-water mark of Pending.
	MaxPending int
}

// Reorderer accepts (index, value) completions in any order from concurrent
// producers and releases them to its Sequence strictly in ascending index order.
// See preserve_order.go for the full contract.
type Reorderer[T any] struct {
	cfg  *config
	id   string
	log  *slog.Logger
	inst instruments

	mu        sync.Mutex
	buf       *orderingBuffer[T]
	cursor    int
	n         int
	finalized bool
	stopped   bool

	out chan entry[T]

	quit      chan struct{}
	abortOnce sync.Once
	abortErr  error // written once, before quit is closed

	// cancel is the owning operation's cancel function; nil for standalone use.
	cancel context.CancelCauseFunc

	isFinalized atomic.Bool
	submitted   atomic.Int64
	released    atomic.Int64
	delivered   atomic.Int64
	pending     atomic.Int64
	maxPending  atomic.Int64

	seq *Sequence[T]
}

// NewReorderer creates a stage expecting exactly n items with indices [0, n),
// or an open-ended stage when n is Unknown.
func NewReorderer[T any](n int, opts ...Option) (*Reorderer[T], error) {
	if n < Unknown {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("n", strconv.Itoa(n)))
	}
	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newReorderer[T](n, cfg), nil
}

func newReorderer[T any](n int, cfg *config) *Reorderer[T] {
	id := uuid.NewString()
	r := &Reorderer[T]{
		cfg:  cfg,
		id:   id,
		log:  cfg.Logger.With(slog.String("op", id)),
		inst: newInstruments(cfg.Metrics),
		buf:  newOrderingBuffer[T](),
		n:    n,
		out:  make(chan entry[T], cfg.Capacity),
		quit: make(chan struct{}),
	}
	r.seq = &Sequence[T]{r: r}
	return r
}

// Sequence returns the consumer view of this stage. It is the same value on every call.
func (r *Reorderer[T]) Sequence() *Sequence[T] { return r.seq }

// Submit hands over the value computed for index. It blocks while the value,
// or a run of values it unblocks, waits for room in the handoff channel.
// It returns a non-nil error when the stage is terminated or the index breaks
// the producer protocol; in the latter case the whole stage is aborted.
func (r *Reorderer[T]) Submit(index int, value T) error {
	return r.submit(entry[T]{index: index, value: value})
}

// SubmitError records that the item at index failed. The consumer receives err
// at that position, tagged with the index (see ExtractIndex).
// A nil err is treated as a zero value submission.
func (r *Reorderer[T]) SubmitError(index int, err error) error {
	return r.submit(entry[T]{index: index, err: err})
}

func (r *Reorderer[T]) submit(e entry[T]) error {
	r.submitted.Inc()
	r.inst.submitted.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.aborted(); err != nil {
		return err
	}
	if r.stopped {
		return ErrStopped
	}
	if err := r.validate(e.index); err != nil {
		r.violation(err)
		return err
	}

	r.buf.push(e)
	r.pending.Inc()
	r.inst.pending.Add(1)
	if peak := int64(r.buf.peak); peak > r.maxPending.Load() {
		r.maxPending.Store(peak)
	}

	return r.drain()
}

// validate runs with mu held.
func (r *Reorderer[T]) validate(index int) error {
	var base error
	switch {
	case r.finalized:
		base = ErrFinalized
	case index < 0 || (r.n != Unknown && index >= r.n):
		base = ErrIndexOutOfRange
	case index < r.cursor || r.buf.contains(index):
		base = ErrDuplicateIndex
	default:
		return nil
	}
	return errorc.With(base,
		errorc.String("index", strconv.Itoa(index)),
		errorc.String("cursor", strconv.Itoa(r.cursor)),
		errorc.String("n", strconv.Itoa(r.n)),
	)
}

// drain releases every entry that is next in line. Runs with mu held; the
// channel send may block until the consumer pulls or the stage is aborted.
func (r *Reorderer[T]) drain() error {
	for {
		head, ok := r.buf.peek()
		if !ok || head.index != r.cursor {
			return nil
		}
		e := r.buf.pop()
		r.pending.Dec()
		r.inst.pending.Add(-1)
		if e.err != nil {
			e.err = newIndexedError(e.err, e.index)
		}

		if err := r.aborted(); err != nil {
			return err
		}
		select {
		case r.out <- e:
		case <-r.quit:
			return r.abortErr
		}

		r.cursor++
		r.released.Inc()
		r.inst.released.Add(1)

		if e.err != nil && r.cfg.StopOnError {
			r.stop(e.err)
			return nil
		}
	}
}

// stop ends production after an in-order error was released. Runs with mu held.
// The consumer still receives the error entry already in the channel.
func (r *Reorderer[T]) stop(cause error) {
	r.stopped = true
	r.discard()
	r.log.Debug("stopping on error", slog.Int("index", r.cursor-1), slog.Any("error", cause))
	if r.cancel != nil {
		r.cancel(ErrStopped)
	}
}

// Finalize tells the stage that no more submissions will come. When every index
// was released it closes the handoff channel so the consumer sees the end of the
// sequence after the last value. A missing index aborts the stage with
// ErrMissingIndex. Calling Finalize again returns the stage's terminal error, if any.
func (r *Reorderer[T]) Finalize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return r.aborted()
	}
	r.finalized = true
	r.isFinalized.Store(true)

	if err := r.aborted(); err != nil {
		r.discard()
		return err
	}
	if r.stopped {
		close(r.out)
		return nil
	}
	if r.n == Unknown && r.buf.len() == 0 {
		r.n = r.cursor
	}
	if r.cursor != r.n || r.buf.len() > 0 {
		err := errorc.With(ErrMissingIndex,
			errorc.String("index", strconv.Itoa(r.cursor)),
			errorc.String("pending", strconv.Itoa(r.buf.len())),
			errorc.String("n", strconv.Itoa(r.n)),
		)
		r.violation(err)
		r.discard()
		return err
	}

	r.log.Debug("finalized", slog.Int("items", r.n), slog.Int("max_pending", r.buf.peak))
	close(r.out)
	return nil
}

// discard drops buffered entries that can no longer be released. Runs with mu held.
func (r *Reorderer[T]) discard() {
	if n := r.buf.len(); n > 0 {
		r.pending.Sub(int64(n))
		r.inst.pending.Add(-int64(n))
	}
	r.buf.reset()
}

func (r *Reorderer[T]) violation(err error) {
	r.inst.violations.Add(1)
	r.abort(err)
}

// abort terminates the stage with err. The first call wins. It never takes mu,
// so it can release a producer blocked on the handoff send.
func (r *Reorderer[T]) abort(err error) {
	r.abortOnce.Do(func() {
		r.abortErr = err
		close(r.quit)
		r.log.Warn("aborted", slog.Any("error", err))
		if r.cancel != nil {
			r.cancel(err)
		}
	})
}

// aborted returns the terminal error once the stage was aborted.
func (r *Reorderer[T]) aborted() error {
	select {
	case <-r.quit:
		return r.abortErr
	default:
		return nil
	}
}

// Stats returns counters describing the stage. It never blocks on producers.
func (r *Reorderer[T]) Stats() Stats {
	return Stats{
		Submitted:  r.submitted.Load(),
		Released:   r.released.Load(),
		Delivered:  r.delivered.Load(),
		Pending:    int(r.pending.Load()),
		MaxPending: int(r.maxPending.Load()),
	}
}

type instruments struct {
	submitted  metrics.Counter
	released   metrics.Counter
	pending    metrics.UpDownCounter
	violations metrics.Counter
	wait       metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		submitted: p.Counter(metrics.ItemsSubmitted,
			metrics.WithDescription("Items submitted to the reorder stage.")),
		released: p.Counter(metrics.ItemsReleased,
			metrics.WithDescription("Items released to the consumer in order.")),
		pending: p.UpDownCounter(metrics.BufferPending,
			metrics.WithDescription("Out-of-order items waiting in the reorder buffer.")),
		violations: p.Counter(metrics.ProtocolViolations,
			metrics.WithDescription("Producer protocol violations detected.")),
		wait: p.Histogram(metrics.ConsumerWait,
			metrics.WithDescription("Time the consumer waited for the next item."),
			metrics.WithUnit("seconds")),
	}
}
