package seq

import (
	"context"

	"golang.org/x/time/rate"
)

// FromSlice returns a Source over items. Close is a no-op.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items, pos: -1}
}

type sliceSource[T any] struct {
	items []T
	pos   int
}

func (s *sliceSource[T]) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.pos+1 >= len(s.items) {
		return false, nil
	}
	s.pos++
	return true, nil
}

func (s *sliceSource[T]) Current() T { return s.items[s.pos] }

func (s *sliceSource[T]) Close(ctx context.Context) error { return nil }

// FromChannel returns a Source draining ch. The sequence ends when ch is
// closed. Close does not drain the channel; the sender owns it.
func FromChannel[T any](ch <-chan T) Source[T] {
	return &chanSource[T]{ch: ch}
}

type chanSource[T any] struct {
	ch  <-chan T
	cur T
}

func (s *chanSource[T]) Next(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case v, ok := <-s.ch:
		if !ok {
			return false, nil
		}
		s.cur = v
		return true, nil
	}
}

func (s *chanSource[T]) Current() T { return s.cur }

func (s *chanSource[T]) Close(ctx context.Context) error { return nil }

// FromFunc returns a Source driven by fn. fn reports (item, true, nil)
// while items remain and (zero, false, nil) on exhaustion; an error ends
// the sequence.
func FromFunc[T any](fn func(ctx context.Context) (T, bool, error)) Source[T] {
	return &funcSource[T]{fn: fn}
}

type funcSource[T any] struct {
	fn  func(ctx context.Context) (T, bool, error)
	cur T
}

func (s *funcSource[T]) Next(ctx context.Context) (bool, error) {
	v, ok, err := s.fn(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.cur = v
	return true, nil
}

func (s *funcSource[T]) Current() T { return s.cur }

func (s *funcSource[T]) Close(ctx context.Context) error { return nil }

// Throttle wraps src so that items are produced at most at the given rate,
// with the given burst. Useful for pacing a hot in-memory source against
// slow downstream stages.
func Throttle[T any](src Source[T], r rate.Limit, burst int) Source[T] {
	return &throttledSource[T]{src: src, limiter: rate.NewLimiter(r, burst)}
}

type throttledSource[T any] struct {
	src     Source[T]
	limiter *rate.Limiter
}

func (s *throttledSource[T]) Next(ctx context.Context) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}
	return s.src.Next(ctx)
}

func (s *throttledSource[T]) Current() T { return s.src.Current() }

func (s *throttledSource[T]) Close(ctx context.Context) error { return s.src.Close(ctx) }
