package inorder

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/ygrebnov/errorc"
	"go.opentelemetry.io/otel"

	"github.com/ygrebnov/inorder/metrics"
)

const tracerName = "github.com/ygrebnov/inorder"

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Capacity:    1,
		Pool:        poolUnspecified,
		MaxWorkers:  0, // GOMAXPROCS
		StopOnError: false,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:     metrics.NewNoopProvider(),
		Tracer:      otel.Tracer(tracerName),
	}
}

// validateConfig checks invariants options cannot enforce one at a time
// and resolves the remaining zero values.
func validateConfig(cfg *config) error {
	if cfg.Capacity == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "handoff capacity must be > 0"))
	}
	if cfg.Pool == poolUnspecified {
		cfg.Pool = poolFixed
	}
	if cfg.Pool == poolFixed && cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = uint(runtime.GOMAXPROCS(0))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(tracerName)
	}
	return nil
}

// buildConfig applies opts over the defaults and validates the result.
func buildConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
