// Package seq provides multiplexing primitives for single-pass sequences.
package seq

import "context"

// Source is a lazy, single-pass sequence of items of type T.
//
// The contract mirrors a pull iterator: Next advances to the following item
// and reports whether one is available; Current returns the item Next just
// produced; Close releases the underlying resource. Next may block (on I/O,
// on a rate limit, on an upstream producer) and honors ctx cancellation.
//
// Current is only valid immediately after Next returned true. A Source is
// not safe for concurrent use; the Multiplexer guarantees at most one
// caller drives it at a time.
type Source[T any] interface {
	// Next advances the sequence. It returns true when an item is
	// available via Current, false when the sequence is exhausted.
	// Exhaustion is permanent.
	Next(ctx context.Context) (bool, error)

	// Current returns the item produced by the last successful Next.
	Current() T

	// Close tears down the sequence. Callers invoke it exactly once.
	Close(ctx context.Context) error
}
