package value

import (
	"errors"
	"fmt"
)

// ErrRagged reports that nested sequences cannot form a rectangular array.
var ErrRagged = errors.New("value: ragged nested sequence")

// Tensor is a rectangular multi-dimensional array: Dims gives the extent
// of each axis and Data holds the scalar elements in row-major order.
// A scalar input yields Dims of length 0 and a single element.
type Tensor struct {
	Dims []int
	Data []Value
}

// At returns the element addressed by one index per axis.
func (t *Tensor) At(indices ...int) (Value, error) {
	if len(indices) != len(t.Dims) {
		return Value{}, fmt.Errorf("value: tensor rank %d, got %d indices", len(t.Dims), len(indices))
	}
	pos := 0
	for axis, i := range indices {
		if i < 0 || i >= t.Dims[axis] {
			return Value{}, fmt.Errorf("value: index %d out of range for axis %d (extent %d)", i, axis, t.Dims[axis])
		}
		pos = pos*t.Dims[axis] + i
	}
	return t.Data[pos], nil
}

// Reshape reinterprets nested arrays-of-arrays as one rectangular
// multi-dimensional array. Every sub-array at the same depth must share
// one length, and leaves must all sit at the same depth; otherwise
// ErrRagged is returned.
func Reshape(v Value) (*Tensor, error) {
	dims, err := measure(v)
	if err != nil {
		return nil, err
	}
	size := 1
	for _, d := range dims {
		size *= d
	}
	t := &Tensor{Dims: dims, Data: make([]Value, 0, size)}
	if err := t.fill(v, 0); err != nil {
		return nil, err
	}
	return t, nil
}

// measure derives the expected dimensions from the first element at each
// depth.
func measure(v Value) ([]int, error) {
	var dims []int
	for v.kind == KindArray {
		dims = append(dims, len(v.a))
		if len(v.a) == 0 {
			break
		}
		v = v.a[0]
	}
	return dims, nil
}

func (t *Tensor) fill(v Value, depth int) error {
	if depth == len(t.Dims) {
		if v.kind == KindArray {
			return fmt.Errorf("%w: array deeper than axis %d", ErrRagged, depth)
		}
		t.Data = append(t.Data, v)
		return nil
	}
	if v.kind != KindArray {
		return fmt.Errorf("%w: scalar at depth %d, expected axis of extent %d", ErrRagged, depth, t.Dims[depth])
	}
	if len(v.a) != t.Dims[depth] {
		return fmt.Errorf("%w: axis %d has extent %d, expected %d", ErrRagged, depth, len(v.a), t.Dims[depth])
	}
	for _, item := range v.a {
		if err := t.fill(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}
