package inorder

import (
	"log/slog"

	"github.com/ygrebnov/errorc"
	"go.opentelemetry.io/otel/trace"

	"github.com/ygrebnov/inorder/metrics"
)

// Option configures an ordered operation. Options return an error on invalid input.
type Option func(*config) error

// WithCapacity sets the handoff channel capacity (default 1, must be > 0).
func WithCapacity(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithCapacity requires n > 0"))
		}
		cfg.Capacity = n
		return nil
	}
}

// WithFixedPool runs tasks on a bounded pool of n workers (must be > 0).
// At most n more tasks wait in the pool queue, so a slow consumer also
// throttles how fast tasks are scheduled and MapStream reads its input.
func WithFixedPool(n uint) Option {
	return func(cfg *config) error {
		if cfg.Pool == poolDynamic {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFixedPool conflicts with WithDynamicPool"))
		}
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFixedPool requires n > 0"))
		}
		cfg.Pool = poolFixed
		cfg.MaxWorkers = n
		return nil
	}
}

// WithDynamicPool runs every task on its own goroutine.
// Nothing bounds the work in flight: RunAll and Map start all tasks at once,
// MapStream reads its input as fast as it arrives, and finished results wait
// in their goroutines until the consumer catches up. Memory then grows with
// the input, not with WithCapacity.
func WithDynamicPool() Option {
	return func(cfg *config) error {
		if cfg.Pool == poolFixed {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithDynamicPool conflicts with WithFixedPool"))
		}
		cfg.Pool = poolDynamic
		cfg.MaxWorkers = 0
		return nil
	}
}

// WithStopOnError ends the sequence at the first item error, in input order,
// and cancels the work still running.
func WithStopOnError() Option {
	return func(cfg *config) error { cfg.StopOnError = true; return nil }
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.Logger = l
		}
		return nil
	}
}

// WithMetrics sets the metrics provider. A nil provider keeps the default.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p != nil {
			cfg.Metrics = p
		}
		return nil
	}
}

// WithTracer sets the tracer used for operation spans. A nil tracer keeps the default.
func WithTracer(t trace.Tracer) Option {
	return func(cfg *config) error {
		if t != nil {
			cfg.Tracer = t
		}
		return nil
	}
}
