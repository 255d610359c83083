package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_ReusesInstrumentsByName(t *testing.T) {
	p := NewBasicProvider()

	a := p.Counter(ItemsSubmitted, WithDescription("first"))
	b := p.Counter(ItemsSubmitted, WithDescription("ignored"))
	a.Add(2)
	b.Add(3)

	require.EqualValues(t, 5, p.CounterValue(ItemsSubmitted))
	cfg, ok := p.InstrumentConfig(ItemsSubmitted)
	require.True(t, ok)
	require.Equal(t, "first", cfg.Description)
	_, ok = p.InstrumentConfig("missing")
	require.False(t, ok)
	require.Zero(t, p.CounterValue("missing"))
}

func TestBasicProvider_ConcurrentUpdates(t *testing.T) {
	p := NewBasicProvider()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Counter(ItemsReleased).Add(1)
			p.UpDownCounter(BufferPending).Add(1)
			p.UpDownCounter(BufferPending).Add(-1)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 50, p.CounterValue(ItemsReleased))
	require.Zero(t, p.UpDownValue(BufferPending))
}

func TestBasicHistogram_Snapshot(t *testing.T) {
	p := NewBasicProvider()
	require.Equal(t, HistSnapshot{}, p.HistogramSnapshot(ConsumerWait))

	h := p.Histogram(ConsumerWait, WithUnit("seconds"))
	for _, v := range []float64{0.5, 0.1, 0.3} {
		h.Record(v)
	}

	s := p.HistogramSnapshot(ConsumerWait)
	require.EqualValues(t, 3, s.Count)
	require.InDelta(t, 0.9, s.Sum, 1e-9)
	require.InDelta(t, 0.1, s.Min, 1e-9)
	require.InDelta(t, 0.5, s.Max, 1e-9)
	require.InDelta(t, 0.3, s.Mean, 1e-9)

	cfg, ok := p.InstrumentConfig(ConsumerWait)
	require.True(t, ok)
	require.Equal(t, "seconds", cfg.Unit)
}

func TestNoopProvider_AcceptsEverything(t *testing.T) {
	var p Provider = NewNoopProvider()
	p.Counter(ItemsSubmitted).Add(1)
	p.UpDownCounter(BufferPending).Add(-1)
	p.Histogram(ConsumerWait).Record(1)
}

func TestWithAttributes_Merges(t *testing.T) {
	cfg := applyOptions([]InstrumentOption{
		WithAttributes(map[string]string{"a": "1"}),
		WithAttributes(nil),
		nil,
		WithAttributes(map[string]string{"b": "2"}),
	})
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, cfg.Attributes)
}
