package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/seqflow/seq"
	"github.com/BaSui01/seqflow/testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     seq.Config
		wantErr bool
	}{
		{"defaults", seq.DefaultConfig(), false},
		{"single consumer", seq.Config{Consumers: 1, CleanupTrigger: 1}, false},
		{"bounded", seq.Config{Consumers: 4, MaxBuffer: 16, CleanupTrigger: 8}, false},
		{"zero consumers", seq.Config{Consumers: 0, CleanupTrigger: 1}, true},
		{"negative consumers", seq.Config{Consumers: -3, CleanupTrigger: 1}, true},
		{"negative buffer", seq.Config{Consumers: 2, MaxBuffer: -1, CleanupTrigger: 1}, true},
		{"zero trigger", seq.Config{Consumers: 2, CleanupTrigger: 0}, true},
		{"trigger exceeds bound", seq.Config{Consumers: 2, MaxBuffer: 3, CleanupTrigger: 5}, true},
		{"trigger equals bound", seq.Config{Consumers: 2, MaxBuffer: 5, CleanupTrigger: 5}, false},
		{"trigger above unbounded", seq.Config{Consumers: 2, MaxBuffer: 0, CleanupTrigger: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, seq.IsConfigError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMultiplexer_DefaultsCleanupTrigger(t *testing.T) {
	ctx := testutil.TestContext(t)
	mux, err := seq.NewMultiplexer(ctx, testutil.IntSource(3), seq.Config{Consumers: 2})
	require.NoError(t, err)

	got, err := testutil.Drain(ctx, mustConsumer(t, mux))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func mustConsumer[T any](t *testing.T, mux *seq.Multiplexer[T]) seq.Source[T] {
	t.Helper()
	c, err := mux.Consumer()
	require.NoError(t, err)
	return c
}

func TestNewMultiplexer_RejectsBadConfig(t *testing.T) {
	ctx := testutil.TestContext(t)

	_, err := seq.NewMultiplexer(ctx, testutil.IntSource(10), seq.Config{Consumers: 0, CleanupTrigger: 1})
	require.Error(t, err)
	assert.True(t, seq.IsConfigError(err))

	_, err = seq.NewMultiplexer(ctx, testutil.IntSource(10), seq.Config{Consumers: 2, MaxBuffer: 3, CleanupTrigger: 5})
	require.Error(t, err)
	assert.True(t, seq.IsConfigError(err))
}

func TestMultiplexer_OverSubscription(t *testing.T) {
	ctx := testutil.TestContext(t)
	mux, err := seq.NewMultiplexer(ctx, testutil.IntSource(5), seq.Config{Consumers: 2, CleanupTrigger: 1})
	require.NoError(t, err)

	c1, err := mux.Consumer()
	require.NoError(t, err)
	c2, err := mux.Consumer()
	require.NoError(t, err)

	_, err = mux.Consumer()
	require.ErrorIs(t, err, seq.ErrTooManyConsumers)
	_, err = mux.Consumer()
	require.ErrorIs(t, err, seq.ErrTooManyConsumers)

	// The first two handles keep working after the rejected request.
	got1, err := testutil.Drain(ctx, c1)
	require.NoError(t, err)
	got2, err := testutil.Drain(ctx, c2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got1)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got2)
}

// A single-consumer multiplexer hands back the source itself: no engine,
// no buffering, no locking.
func TestMultiplexer_SingleConsumerPassthrough(t *testing.T) {
	ctx := testutil.TestContext(t)
	src := testutil.NewCounting(testutil.IntSource(100))
	mux, err := seq.NewMultiplexer(ctx, src, seq.Config{Consumers: 1, CleanupTrigger: 1})
	require.NoError(t, err)

	c, err := mux.Consumer()
	require.NoError(t, err)
	assert.Same(t, src, c)

	got, err := testutil.Drain(ctx, c)
	require.NoError(t, err)
	require.Len(t, got, 100)
	require.NoError(t, c.Close(ctx))
	assert.EqualValues(t, 1, src.Closes())

	stats := mux.Stats()
	assert.Zero(t, stats.Fetched, "no engine should have been built")
	assert.Zero(t, stats.Buffered)
}

func TestMultiplexer_LazyEngineExactlyOnce(t *testing.T) {
	ctx := testutil.TestContext(t)
	src := testutil.NewCounting(testutil.IntSource(10))
	mux, err := seq.NewMultiplexer(ctx, src, seq.Config{Consumers: 3, CleanupTrigger: 1})
	require.NoError(t, err)

	// Nothing touches the source until a consumer advances.
	assert.Zero(t, src.Nexts())

	handles := make([]seq.Source[int], 3)
	done := make(chan struct{})
	for i := range handles {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			h, err := mux.Consumer()
			if err == nil {
				handles[i] = h
			}
		}(i)
	}
	for range handles {
		<-done
	}
	for i, h := range handles {
		require.NotNil(t, h, "handle %d", i)
	}

	for _, h := range handles {
		got, err := testutil.Drain(ctx, h)
		require.NoError(t, err)
		assert.Len(t, got, 10)
	}
	assert.EqualValues(t, 11, src.Nexts(), "one advance per item plus the final exhaustion probe")
}

func TestConfigFromYAML(t *testing.T) {
	cfg, err := seq.ConfigFromYAML([]byte("consumers: 4\nmax_buffer: 32\ncleanup_trigger: 8\n"))
	require.NoError(t, err)
	assert.Equal(t, seq.Config{Consumers: 4, MaxBuffer: 32, CleanupTrigger: 8}, cfg)

	// Absent fields fall back to defaults.
	cfg, err = seq.ConfigFromYAML([]byte("consumers: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Consumers)
	assert.Equal(t, seq.DefaultConfig().CleanupTrigger, cfg.CleanupTrigger)

	_, err = seq.ConfigFromYAML([]byte("consumers: 0\n"))
	require.Error(t, err)
	assert.True(t, seq.IsConfigError(err))

	_, err = seq.ConfigFromYAML([]byte("consumers: [oops\n"))
	require.Error(t, err)
}
