package seq

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersTrackEngine(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics("seqflow_test", reg)

	mux, err := NewMultiplexer(ctx, FromSlice([]int{1, 2, 3, 4}), Config{
		Consumers:      2,
		CleanupTrigger: 1,
	}, WithMetrics(m))
	require.NoError(t, err)

	c1, err := mux.Consumer()
	require.NoError(t, err)
	c2, err := mux.Consumer()
	require.NoError(t, err)

	for _, c := range []Source[int]{c1, c2} {
		for {
			ok, err := c.Next(ctx)
			require.NoError(t, err)
			if !ok {
				break
			}
		}
		require.NoError(t, c.Close(ctx))
	}

	assert.Equal(t, float64(4), promtestutil.ToFloat64(m.itemsFetched))
	assert.Equal(t, float64(4), promtestutil.ToFloat64(m.cacheHits))
	assert.Equal(t, float64(4), promtestutil.ToFloat64(m.itemsEvicted))
	assert.Equal(t, float64(0), promtestutil.ToFloat64(m.attached))
}

// The occupancy gauge must reflect the window after the trim pass that
// follows a fetch, not the pre-trim occupancy.
func TestMetrics_BufferedGaugeTracksTrim(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics("seqflow_test", reg)

	mux, err := NewMultiplexer(ctx, FromSlice([]int{1, 2, 3}), Config{
		Consumers:      2,
		MaxBuffer:      2,
		CleanupTrigger: 1,
	}, WithMetrics(m))
	require.NoError(t, err)

	c1, err := mux.Consumer()
	require.NoError(t, err)
	c2, err := mux.Consumer()
	require.NoError(t, err)
	require.NoError(t, c2.Close(ctx))

	// With only c1 attached, every fetched item is evicted by the trim
	// pass inside the same call.
	ok, err := c1.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(0), promtestutil.ToFloat64(m.buffered))

	for {
		ok, err := c1.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	require.NoError(t, c1.Close(ctx))
	assert.Equal(t, float64(0), promtestutil.ToFloat64(m.buffered))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.observeFetch(1)
	m.observeHit()
	m.observeEvict(2, 0)
	m.setAttached(3)
}
