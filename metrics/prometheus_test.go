package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusProvider_ExportsInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg)

	c := p.Counter(ItemsSubmitted, WithDescription("Items submitted."))
	c.Add(3)
	c.Add(-1) // ignored
	g := p.UpDownCounter(BufferPending)
	g.Add(4)
	g.Add(-3)
	p.Histogram(ConsumerWait).Record(0.2)

	require.InDelta(t, 3, testutil.ToFloat64(p.counters[ItemsSubmitted]), 1e-9)
	require.InDelta(t, 1, testutil.ToFloat64(p.gauges[BufferPending]), 1e-9)

	n, err := testutil.GatherAndCount(reg, ItemsSubmitted, BufferPending, ConsumerWait)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestPrometheusProvider_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPrometheusProvider(reg)
	second := NewPrometheusProvider(reg)

	first.Counter(ItemsReleased).Add(2)
	second.Counter(ItemsReleased).Add(5)

	require.InDelta(t, 7, testutil.ToFloat64(first.counters[ItemsReleased]), 1e-9)
	require.Same(t, first.counters[ItemsReleased], second.counters[ItemsReleased])
}

func TestPrometheusProvider_ConstLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg)
	p.Counter(ProtocolViolations, WithAttributes(map[string]string{"stage": "decode"})).Add(1)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	labels := families[0].GetMetric()[0].GetLabel()
	require.Len(t, labels, 1)
	require.Equal(t, "stage", labels[0].GetName())
	require.Equal(t, "decode", labels[0].GetValue())
}
