package inorder

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/ygrebnov/inorder/metrics"
)

type poolKind int

const (
	poolUnspecified poolKind = iota
	poolFixed
	poolDynamic
)

// config holds the settings of one ordered operation.
type config struct {
	// Capacity is the size of the handoff channel between the reorder stage
	// and the consumer. 1 gives the tightest backpressure; larger values
	// smooth out latency at the cost of looser throttling.
	// Default: 1.
	Capacity uint

	// Pool selects the worker pool used by RunAll, Map and MapStream.
	// Default: fixed pool.
	Pool poolKind

	// MaxWorkers bounds the fixed pool. Zero means runtime.GOMAXPROCS(0).
	// Ignored by the dynamic pool.
	// Default: 0
	MaxWorkers uint

	// StopOnError makes the first in-order item error terminal and cancels
	// the remaining work.
	// Default: false
	StopOnError bool

	// Logger receives debug and warning records. Default discards.
	Logger *slog.Logger

	// Metrics records stage counters. Default: no-op provider.
	Metrics metrics.Provider

	// Tracer starts one span per operation. Default: global otel tracer.
	Tracer trace.Tracer
}
