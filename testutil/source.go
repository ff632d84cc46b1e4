// Package testutil provides shared sources and helpers for seqflow tests.
package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BaSui01/seqflow/seq"
)

// TestContext returns a context cancelled when the test finishes.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// IntSource returns a source producing 0..n-1.
func IntSource(n int) seq.Source[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return seq.FromSlice(items)
}

// Scripted is a source that replays a fixed item list, optionally sleeping
// before each item. It tracks how far it has been driven.
type Scripted[T any] struct {
	Items []T
	Delay time.Duration

	pos int
}

// Next advances the script.
func (s *Scripted[T]) Next(ctx context.Context) (bool, error) {
	if s.pos >= len(s.Items) {
		return false, nil
	}
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.Delay):
		}
	}
	s.pos++
	return true, nil
}

// Current returns the current script item.
func (s *Scripted[T]) Current() T { return s.Items[s.pos-1] }

// Close is a no-op.
func (s *Scripted[T]) Close(ctx context.Context) error { return nil }

// Failing produces 0..failAt-1, then fails every subsequent Next with Err.
type Failing struct {
	FailAt int
	Err    error

	pos int
}

// Next advances or injects the scripted failure.
func (f *Failing) Next(ctx context.Context) (bool, error) {
	if f.pos >= f.FailAt {
		return false, f.Err
	}
	f.pos++
	return true, nil
}

// Current returns the current item.
func (f *Failing) Current() int { return f.pos - 1 }

// Close is a no-op.
func (f *Failing) Close(ctx context.Context) error { return nil }

// Counting wraps a source and counts how it is driven.
type Counting[T any] struct {
	Src seq.Source[T]

	nexts  atomic.Int64
	closes atomic.Int64
}

// NewCounting wraps src.
func NewCounting[T any](src seq.Source[T]) *Counting[T] {
	return &Counting[T]{Src: src}
}

// Next delegates and counts.
func (c *Counting[T]) Next(ctx context.Context) (bool, error) {
	c.nexts.Add(1)
	return c.Src.Next(ctx)
}

// Current delegates.
func (c *Counting[T]) Current() T { return c.Src.Current() }

// Close delegates and counts.
func (c *Counting[T]) Close(ctx context.Context) error {
	c.closes.Add(1)
	return c.Src.Close(ctx)
}

// Nexts reports how many times Next was called.
func (c *Counting[T]) Nexts() int64 { return c.nexts.Load() }

// Closes reports how many times Close was called.
func (c *Counting[T]) Closes() int64 { return c.closes.Load() }

// Drain consumes src to exhaustion and returns everything it produced.
func Drain[T any](ctx context.Context, src seq.Source[T]) ([]T, error) {
	var out []T
	for {
		ok, err := src.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, src.Current())
	}
}
