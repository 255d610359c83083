package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider exports instruments through a prometheus.Registerer.
// Counters map to prometheus counters, up/down counters to gauges and
// histograms to histograms with the default buckets. Instrument attributes
// become constant labels.
type PrometheusProvider struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// NewPrometheusProvider returns a provider registering into reg.
// A nil reg means prometheus.DefaultRegisterer.
func NewPrometheusProvider(reg prometheus.Registerer) *PrometheusProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusProvider{
		reg:        reg,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		cfg := applyOptions(opts)
		c = register(p.reg, prometheus.NewCounter(prometheus.CounterOpts{
			Name:        name,
			Help:        help(name, cfg),
			ConstLabels: cfg.Attributes,
		}))
		p.counters[name] = c
	}
	return promCounter{c: c}
}

func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gauges[name]
	if !ok {
		cfg := applyOptions(opts)
		g = register(p.reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			Help:        help(name, cfg),
			ConstLabels: cfg.Attributes,
		}))
		p.gauges[name] = g
	}
	return promGauge{g: g}
}

func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.histograms[name]
	if !ok {
		cfg := applyOptions(opts)
		h = register(p.reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        name,
			Help:        help(name, cfg),
			ConstLabels: cfg.Attributes,
			Buckets:     prometheus.DefBuckets,
		}))
		p.histograms[name] = h
	}
	return promHistogram{h: h}
}

// register adds c to reg. When an identical collector is already registered
// (another provider on the same registry) the existing one is returned.
// Any other registration error leaves c working but unexported.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	return c
}

func help(name string, cfg InstrumentConfig) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return name
}

type promCounter struct{ c prometheus.Counter }

// Add ignores negative deltas; prometheus counters only go up.
func (p promCounter) Add(n int64) {
	if n > 0 {
		p.c.Add(float64(n))
	}
}

type promGauge struct{ g prometheus.Gauge }

func (p promGauge) Add(n int64) { p.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (p promHistogram) Record(v float64) { p.h.Observe(v) }
