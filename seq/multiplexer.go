package seq

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config configures a Multiplexer.
type Config struct {
	// Consumers is the fixed number of independent readers. Required, >= 1.
	// Handles cannot be added or removed after creation.
	Consumers int `yaml:"consumers" json:"consumers"`

	// MaxBuffer bounds how many items may sit in the shared window before
	// the leading consumer has to wait for the slowest one. 0 = unbounded.
	MaxBuffer int `yaml:"max_buffer" json:"max_buffer"`

	// CleanupTrigger is the window size at which the trim pass starts
	// reclaiming slots the slowest consumer has passed. Must be >= 1 and,
	// when MaxBuffer is set, <= MaxBuffer.
	CleanupTrigger int `yaml:"cleanup_trigger" json:"cleanup_trigger"`
}

// DefaultConfig returns sensible defaults for a small fan-out.
func DefaultConfig() Config {
	return Config{
		Consumers:      2,
		MaxBuffer:      0,
		CleanupTrigger: 1,
	}
}

// withDefaults fills unset fields. A zero CleanupTrigger means "trim as
// eagerly as possible".
func (c Config) withDefaults() Config {
	if c.CleanupTrigger == 0 {
		c.CleanupTrigger = 1
	}
	return c
}

// Validate checks the configuration. All violations are ConfigErrors.
func (c Config) Validate() error {
	if c.Consumers < 1 {
		return &ConfigError{Field: "consumers", Reason: "must be at least 1"}
	}
	if c.MaxBuffer < 0 {
		return &ConfigError{Field: "max_buffer", Reason: "must be 0 (unbounded) or positive"}
	}
	if c.CleanupTrigger < 1 {
		return &ConfigError{Field: "cleanup_trigger", Reason: "must be at least 1"}
	}
	if c.MaxBuffer > 0 && c.CleanupTrigger > c.MaxBuffer {
		return &ConfigError{Field: "cleanup_trigger", Reason: "must not exceed max_buffer"}
	}
	return nil
}

// ConfigFromYAML loads a Config from YAML, applying defaults for absent
// fields and validating the result.
func ConfigFromYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Field: "yaml", Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures optional Multiplexer collaborators.
type Option func(*muxOptions)

type muxOptions struct {
	logger  *zap.Logger
	metrics *Metrics
}

// WithLogger sets a custom zap logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *muxOptions) { o.logger = logger }
}

// WithMetrics attaches a Prometheus metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(o *muxOptions) { o.metrics = m }
}

// Multiplexer fans one single-pass Source out to a fixed number of
// independent consumers. Construction is cheap; the shared engine is built
// lazily, exactly once, on the first Consumer call.
//
// The ctx supplied at construction is the pipeline's single cancellation
// signal: every call into the wrapped source runs under it. Per-consumer
// cancellation is not supported, because all consumers share one pull.
type Multiplexer[T any] struct {
	src    Source[T]
	cfg    Config
	ctx    context.Context
	logger *zap.Logger

	once    sync.Once
	engine  atomic.Pointer[engine[T]]
	metrics *Metrics
	issued  atomic.Int32
}

// NewMultiplexer creates a Multiplexer over src for cfg.Consumers readers.
// It returns a ConfigError when the configuration is invalid.
func NewMultiplexer[T any](ctx context.Context, src Source[T], cfg Config, opts ...Option) (*Multiplexer[T], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := muxOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Multiplexer[T]{
		src: src,
		cfg: cfg,
		ctx: ctx,
		logger: o.logger.With(
			zap.String("component", "seq.multiplexer"),
			zap.String("mux_id", uuid.NewString()),
		),
		metrics: o.metrics,
	}, nil
}

// Consumer issues the next consumer handle. It fails with
// ErrTooManyConsumers once cfg.Consumers handles have been issued;
// previously issued handles are unaffected.
//
// With Consumers == 1 the source itself is returned: a single reader needs
// no buffering, no lock and no capacity waits.
func (m *Multiplexer[T]) Consumer() (Source[T], error) {
	idx := int(m.issued.Add(1)) - 1
	if idx >= m.cfg.Consumers {
		m.logger.Warn("consumer handle denied",
			zap.Int("declared", m.cfg.Consumers))
		return nil, ErrTooManyConsumers
	}

	if m.cfg.Consumers == 1 {
		return m.src, nil
	}

	m.once.Do(func() {
		m.engine.Store(newEngine(m.ctx, m.src, m.cfg, m.logger, m.metrics))
		m.logger.Debug("engine created",
			zap.Int("consumers", m.cfg.Consumers),
			zap.Int("max_buffer", m.cfg.MaxBuffer),
			zap.Int("cleanup_trigger", m.cfg.CleanupTrigger))
	})
	eng := m.engine.Load()
	eng.attach(idx)
	return &consumer[T]{eng: eng, idx: idx}, nil
}

// Stats contains a snapshot of a Multiplexer's engine counters.
type Stats struct {
	Issued       int32 `json:"issued"`
	Attached     int32 `json:"attached"`
	Fetched      int64 `json:"fetched"`
	CacheHits    int64 `json:"cache_hits"`
	Evicted      int64 `json:"evicted"`
	Buffered     int   `json:"buffered"`
	PeakBuffered int   `json:"peak_buffered"`
}

// Stats snapshots the multiplexer counters. Before the first Consumer call
// (and on the single-consumer fast path) only Issued is populated.
func (m *Multiplexer[T]) Stats() Stats {
	issued := m.issued.Load()
	if issued > int32(m.cfg.Consumers) {
		issued = int32(m.cfg.Consumers)
	}
	eng := m.engine.Load()
	if eng == nil {
		return Stats{Issued: issued}
	}
	s := eng.stats()
	s.Issued = issued
	return s
}
