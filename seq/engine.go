package seq

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// engine is the shared state behind every consumer handle of one
// Multiplexer: the window buffer, per-consumer cursors, the capacity wait
// and the usage count. All handles funnel through it, and it drives the
// underlying Source at most one caller at a time.
type engine[T any] struct {
	src     Source[T]
	ctx     context.Context // pipeline-wide cancellation, fixed at construction
	logger  *zap.Logger
	metrics *Metrics

	maxBuffer int // bound on buffered items; 0 means unbounded
	trigger   int

	mu       sync.Mutex
	wake     chan struct{} // closed and replaced on every window or latch change
	fetching bool          // a caller is inside src.Next
	window   ring[T]
	start    int64   // absolute source index of window element 0
	frontier int64   // highest absolute index fetched so far
	cursors  []int64 // last observed absolute index per consumer, -1 initially
	states   []consumerState
	hasMore  bool  // latches false on source exhaustion or error
	srcErr   error // latched source error, surfaced to later fetch attempts
	peak     int

	usage     atomic.Int32
	fetched   atomic.Int64
	cacheHits atomic.Int64
	evicted   atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

// consumerState tracks one declared consumer slot. A pending slot still
// constrains the trim pass: its future handle starts at position 0, so
// nothing may be evicted before it attaches and advances.
type consumerState uint8

const (
	statePending consumerState = iota
	stateAttached
	stateClosed
)

func newEngine[T any](ctx context.Context, src Source[T], cfg Config, logger *zap.Logger, metrics *Metrics) *engine[T] {
	e := &engine[T]{
		src:       src,
		ctx:       ctx,
		logger:    logger,
		metrics:   metrics,
		maxBuffer: cfg.MaxBuffer,
		trigger:   cfg.CleanupTrigger,
		wake:      make(chan struct{}),
		frontier:  -1,
		cursors:   make([]int64, cfg.Consumers),
		states:    make([]consumerState, cfg.Consumers),
		hasMore:   true,
	}
	for i := range e.cursors {
		e.cursors[i] = -1
	}
	return e
}

// broadcastLocked wakes every waiting consumer so it re-evaluates the
// window state. Caller holds e.mu. A wake carries no meaning by itself;
// waiters loop and re-check what they were waiting for.
func (e *engine[T]) broadcastLocked() {
	close(e.wake)
	e.wake = make(chan struct{})
}

// attach registers one more handle on the engine.
func (e *engine[T]) attach(idx int) {
	e.mu.Lock()
	e.states[idx] = stateAttached
	e.mu.Unlock()
	n := e.usage.Add(1)
	e.metrics.setAttached(int(n))
}

// next advances consumer idx by one position. The caller ctx governs only
// this caller's wait for buffer capacity; the producer itself runs under
// the engine's construction ctx, shared by all consumers.
func (e *engine[T]) next(ctx context.Context, idx int) (T, bool, error) {
	var zero T

	e.mu.Lock()
	for {
		want := e.cursors[idx] + 1

		// Common path: the wanted item is already in the window. Lock-only,
		// never blocks.
		if want <= e.frontier {
			v := e.window.at(int(want - e.start))
			e.cursors[idx] = want
			e.cacheHits.Add(1)
			e.trimLocked(false)
			e.mu.Unlock()
			e.metrics.observeHit()
			return v, true, nil
		}
		if !e.hasMore {
			err := e.srcErr
			e.mu.Unlock()
			return zero, false, err
		}

		// The item must be fetched. Wait whenever another caller is already
		// inside the producer, or a bounded window has no free slot. A wake
		// may mean the wanted position got cached, a slot opened, or the
		// source ended; the loop re-checks all of them.
		if e.fetching || (e.maxBuffer > 0 && e.window.len() >= e.maxBuffer) {
			ch := e.wake
			e.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
			e.mu.Lock()
			continue
		}

		// Fetch outside the lock so cached reads stay lock-only while the
		// producer runs. The fetching flag keeps at most one caller inside
		// the producer, and only a fetch moves the frontier, so want is
		// still frontier+1 on re-entry.
		e.fetching = true
		e.mu.Unlock()

		ok, err := e.src.Next(e.ctx)
		var v T
		if err == nil && ok {
			v = e.src.Current()
		}

		e.mu.Lock()
		e.fetching = false
		if err != nil {
			e.hasMore = false
			e.srcErr = err
			e.broadcastLocked()
			e.mu.Unlock()
			e.logger.Warn("source failed", zap.Int64("position", want), zap.Error(err))
			return zero, false, err
		}
		if !ok {
			e.hasMore = false
			e.broadcastLocked()
			e.mu.Unlock()
			e.logger.Debug("source exhausted", zap.Int64("length", want))
			return zero, false, nil
		}

		e.window.push(v)
		e.frontier = want
		e.cursors[idx] = want
		e.fetched.Add(1)
		if occ := e.window.len(); occ > e.peak {
			e.peak = occ
		}
		e.broadcastLocked()
		e.trimLocked(false)
		e.metrics.observeFetch(e.window.len())
		e.mu.Unlock()
		return v, true, nil
	}
}

// trimLocked reclaims window slots every still-attached consumer has moved
// past. Caller holds e.mu. The trigger threshold is skipped when force is
// set (detach must not leave a departed consumer's backlog pinned behind
// the threshold).
func (e *engine[T]) trimLocked(force bool) {
	if !force && e.window.len() < e.trigger {
		return
	}
	minNeeded := int64(-1)
	for i, c := range e.cursors {
		if e.states[i] == stateClosed {
			continue
		}
		// The consumer still needs everything after its cursor.
		if minNeeded == -1 || c+1 < minNeeded {
			minNeeded = c + 1
		}
	}
	if minNeeded < 0 {
		return
	}
	evict := minNeeded - e.start
	if evict <= 0 {
		return
	}
	e.window.trim(int(evict))
	e.start += evict
	e.evicted.Add(evict)
	e.broadcastLocked()
	e.metrics.observeEvict(int(evict), e.window.len())
}

// detach removes one handle. The last detach tears down the source,
// exactly once. Closing one handle may unblock the others: a slow
// consumer's departure can make the whole window evictable.
func (e *engine[T]) detach(idx int) error {
	e.mu.Lock()
	e.states[idx] = stateClosed
	e.trimLocked(true)
	e.mu.Unlock()

	n := e.usage.Add(-1)
	e.metrics.setAttached(int(n))
	if n > 0 {
		return nil
	}

	// Last one out: nobody is left to read the tail of the window.
	e.mu.Lock()
	if l := e.window.len(); l > 0 {
		e.window.trim(l)
		e.evicted.Add(int64(l))
		e.metrics.observeEvict(l, 0)
	}
	e.mu.Unlock()

	e.closeOnce.Do(func() {
		e.closeErr = e.src.Close(e.ctx)
		e.logger.Debug("source closed",
			zap.Int64("fetched", e.fetched.Load()),
			zap.Int64("evicted", e.evicted.Load()))
	})
	return e.closeErr
}

// stats snapshots the engine counters. Used by Multiplexer.Stats.
func (e *engine[T]) stats() Stats {
	e.mu.Lock()
	buffered, peak := e.window.len(), e.peak
	e.mu.Unlock()
	return Stats{
		Fetched:      e.fetched.Load(),
		CacheHits:    e.cacheHits.Load(),
		Evicted:      e.evicted.Load(),
		Buffered:     buffered,
		PeakBuffered: peak,
		Attached:     e.usage.Load(),
	}
}
