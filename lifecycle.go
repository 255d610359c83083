package inorder

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ygrebnov/inorder/pool"
)

// operation wires one reorder stage to a worker pool for RunAll, Map and MapStream.
// The pool, the context and the span live exactly as long as the operation.
type operation[R any] struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelCauseFunc

	stage      *Reorderer[R]
	pool       pool.Pool
	dispatcher *dispatcher[R]
	span       trace.Span
	dispatched int

	// stopWatch detaches the parent-cancellation hook.
	stopWatch func() bool

	closeOnce sync.Once
}

func startOperation[R any](parent context.Context, name string, n int, cfg *config) *operation[R] {
	stage := newReorderer[R](n, cfg)

	attrs := []attribute.KeyValue{attribute.String("inorder.op", stage.id)}
	if n != Unknown {
		attrs = append(attrs, attribute.Int("inorder.items", n))
	}
	spanCtx, span := cfg.Tracer.Start(parent, name, trace.WithAttributes(attrs...))

	ctx, cancel := context.WithCancelCause(spanCtx)
	stage.cancel = cancel

	var p pool.Pool
	if cfg.Pool == poolDynamic {
		p = pool.NewDynamic()
	} else {
		p = pool.NewFixed(cfg.MaxWorkers)
	}

	op := &operation[R]{
		parent:     parent,
		ctx:        ctx,
		cancel:     cancel,
		stage:      stage,
		pool:       p,
		dispatcher: newDispatcher[R](p, newWorker[R](stage)),
		span:       span,
	}
	op.stopWatch = context.AfterFunc(parent, func() { stage.abort(cancelled(parent)) })

	stage.log.Debug("operation started", slog.String("name", name), slog.Int("items", n))
	return op
}

// run dispatches the whole source and then shuts the operation down.
// It is meant to run on its own goroutine.
func (op *operation[R]) run(next source[R]) {
	defer op.close()
	op.dispatched = op.dispatcher.run(op.ctx, next)
}

// close executes the shutdown sequence exactly once:
// 1) wait for every scheduled task to return (the pool accepts nothing afterwards)
// 2) detach the parent watcher; if the parent is done, abort with ErrCancelled
// 3) finalize the stage: close the handoff channel or report a missing index
// 4) release the operation context
// 5) end the span and log a summary
func (op *operation[R]) close() {
	op.closeOnce.Do(func() {
		op.pool.Wait()

		op.stopWatch()
		if op.parent.Err() != nil {
			op.stage.abort(cancelled(op.parent))
		}

		err := op.stage.Finalize()
		op.cancel(nil)

		stats := op.stage.Stats()
		op.span.SetAttributes(
			attribute.Int("inorder.dispatched", op.dispatched),
			attribute.Int64("inorder.released", stats.Released),
			attribute.Int("inorder.max_pending", stats.MaxPending),
		)
		if err != nil {
			op.span.RecordError(err)
			op.span.SetStatus(codes.Error, err.Error())
		} else {
			op.span.SetStatus(codes.Ok, "ok")
		}
		op.span.End()

		op.stage.log.Debug("operation finished",
			slog.Int("dispatched", op.dispatched),
			slog.Int64("submitted", stats.Submitted),
			slog.Int64("released", stats.Released),
			slog.Int("max_pending", stats.MaxPending),
			slog.Any("error", err),
		)
	})
}
