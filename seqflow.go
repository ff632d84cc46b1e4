// Package seqflow provides a top-level convenience entry point for
// multiplexing single-pass sequences.
//
// Usage:
//
//	import "github.com/BaSui01/seqflow"
//
//	mux, err := seqflow.New(ctx, src, seqflow.Config{Consumers: 3})
//	c, err := mux.Consumer()
//
// This is a thin wrapper around the seq package; both produce identical
// results. Use this package when you prefer the shorter import path.
package seqflow

import (
	"context"

	"github.com/BaSui01/seqflow/seq"
)

// Source is the lazy sequence contract consumed and exposed by the
// multiplexer.
type Source[T any] = seq.Source[T]

// Config configures a multiplexer.
type Config = seq.Config

// Option configures optional multiplexer collaborators.
type Option = seq.Option

// Multiplexer fans one single-pass source out to a fixed set of consumers.
type Multiplexer[T any] = seq.Multiplexer[T]

// New creates a multiplexer over src. See seq.NewMultiplexer.
func New[T any](ctx context.Context, src Source[T], cfg Config, opts ...Option) (*Multiplexer[T], error) {
	return seq.NewMultiplexer(ctx, src, cfg, opts...)
}

// Re-export the option constructors so callers never need to import seq/.

// WithLogger sets a custom zap logger.
var WithLogger = seq.WithLogger

// WithMetrics attaches a Prometheus metrics collector.
var WithMetrics = seq.WithMetrics

// ErrTooManyConsumers is returned when more handles are requested than
// Config.Consumers declared.
var ErrTooManyConsumers = seq.ErrTooManyConsumers
