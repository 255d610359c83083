package inorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// worker runs one task and hands its outcome to the reorder stage.
type worker[R any] struct {
	stage *Reorderer[R]
	log   *slog.Logger
}

func newWorker[R any](stage *Reorderer[R]) *worker[R] {
	return &worker[R]{stage: stage, log: stage.log}
}

func (w *worker[R]) execute(ctx context.Context, index int, t Task[R]) {
	var err error
	if ctx.Err() != nil {
		// Queued behind a cancellation: don't run, just account for the position.
		err = w.stage.SubmitError(index, cancelled(ctx))
	} else if result, runErr := t.Run(ctx); runErr != nil {
		err = w.stage.SubmitError(index, runErr)
	} else {
		err = w.stage.Submit(index, result)
	}

	if err != nil && errors.Is(err, ErrProtocolViolation) {
		w.log.Warn("submit rejected", slog.Int("index", index), slog.Any("error", err))
	}
}

// cancelled builds the error reported for work cut short by ctx.
func cancelled(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrCancelled) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
