package metrics

import (
	"math"
	"sync"

	"go.uber.org/atomic"
)

// BasicProvider is an in-memory Provider for tests, examples and small apps.
// Instruments are created on first use and reused by name. Values can be read
// back by name with CounterValue, UpDownValue and HistogramSnapshot, and the
// creation options with InstrumentConfig.
type BasicProvider struct {
	mu         sync.RWMutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

// getOrCreate looks name up under the read lock and falls back to creating it
// under the write lock, re-checking in between.
func getOrCreate[I any](p *BasicProvider, m map[string]I, name string, opts []InstrumentOption, mk func() I) I {
	p.mu.RLock()
	inst, ok := m[name]
	p.mu.RUnlock()
	if ok {
		return inst
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if inst, ok = m[name]; ok {
		return inst
	}
	p.meta[name] = applyOptions(opts)
	inst = mk()
	m[name] = inst
	return inst
}

// Counter returns the monotonic counter registered under name.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return getOrCreate(p, p.counters, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// UpDownCounter returns the up/down counter registered under name.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return getOrCreate(p, p.updowns, name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

// Histogram returns the histogram registered under name.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return getOrCreate(p, p.histograms, name, opts, func() *BasicHistogram {
		return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
	})
}

// CounterValue returns the value of the named counter, 0 if it was never created.
func (p *BasicProvider) CounterValue(name string) int64 {
	p.mu.RLock()
	c, ok := p.counters[name]
	p.mu.RUnlock()
	if !ok {
		return 0
	}
	return c.Snapshot()
}

// UpDownValue returns the value of the named up/down counter, 0 if it was never created.
func (p *BasicProvider) UpDownValue(name string) int64 {
	p.mu.RLock()
	u, ok := p.updowns[name]
	p.mu.RUnlock()
	if !ok {
		return 0
	}
	return u.Snapshot()
}

// HistogramSnapshot returns the state of the named histogram.
func (p *BasicProvider) HistogramSnapshot(name string) HistSnapshot {
	p.mu.RLock()
	h, ok := p.histograms[name]
	p.mu.RUnlock()
	if !ok {
		return HistSnapshot{}
	}
	return h.Snapshot()
}

// InstrumentConfig returns the options the named instrument was created with.
// Later lookups of the same name do not change them.
func (p *BasicProvider) InstrumentConfig(name string) (InstrumentConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64)     { c.val.Add(n) }
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe up/down counter.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64)     { u.val.Add(n) }
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min and max. No buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds a measurement.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 || v < h.min {
		h.min = v
	}
	if h.count == 0 || v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
}

// HistSnapshot is an immutable copy of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
