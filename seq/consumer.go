package seq

import "context"

// consumer is one handle on a shared engine. It implements Source[T], so
// code written against a plain Source cannot tell a multiplexed view from
// the underlying sequence.
//
// A consumer is driven by a single goroutine, like any Source. Distinct
// consumers of the same Multiplexer may run concurrently.
type consumer[T any] struct {
	eng    *engine[T]
	idx    int
	cur    T
	closed bool
}

func (c *consumer[T]) Next(ctx context.Context) (bool, error) {
	if c.closed {
		return false, ErrConsumerClosed
	}
	v, ok, err := c.eng.next(ctx, c.idx)
	if ok {
		// Keep our own copy: the shared window may evict this position
		// as soon as the slowest consumer moves past it.
		c.cur = v
	}
	return ok, err
}

func (c *consumer[T]) Current() T { return c.cur }

// Close detaches the handle. The last handle to close tears down the
// underlying source; closing is idempotent per handle and never affects
// the other consumers' progress.
func (c *consumer[T]) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.eng.detach(c.idx)
}
