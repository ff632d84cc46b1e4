package seq

// ring is a growable ring buffer holding a contiguous window of the source
// sequence. Elements are addressed relative to the window start, so trimming
// the front never reallocates or shifts the remaining items.
type ring[T any] struct {
	buf  []T
	head int // physical index of logical element 0
	n    int
}

func (r *ring[T]) len() int { return r.n }

func (r *ring[T]) at(i int) T {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *ring[T]) push(v T) {
	if r.n == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
}

// trim drops the first k elements, zeroing their slots so the GC can
// reclaim what they referenced.
func (r *ring[T]) trim(k int) {
	if k <= 0 {
		return
	}
	var zero T
	for i := 0; i < k; i++ {
		r.buf[(r.head+i)%len(r.buf)] = zero
	}
	r.head = (r.head + k) % len(r.buf)
	r.n -= k
	if r.n == 0 {
		r.head = 0
	}
}

func (r *ring[T]) grow() {
	next := make([]T, max(2*len(r.buf), 8))
	for i := 0; i < r.n; i++ {
		next[i] = r.at(i)
	}
	r.buf = next
	r.head = 0
}
