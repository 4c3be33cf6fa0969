package tensor

import (
	"fmt"

	"github.com/wippyai/ort/errors"
)

// View is a strided window over a flat row-major buffer. Reshaping
// operations share the buffer and only rewrite shape and strides; Compact
// materializes the window into a fresh contiguous slice.
type View[T Element] struct {
	data    []T
	shape   Shape
	strides []int64
	offset  int64
}

// NewView wraps data as a contiguous row-major view of the given shape. The
// data length must match the shape's element count exactly.
func NewView[T Element](data []T, shape Shape) (*View[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if want := shape.Elements(); int64(len(data)) != want {
		return nil, errors.InvalidArgument("data has %d elements; shape %s needs %d", len(data), shape, want)
	}
	return &View[T]{
		data:    data,
		shape:   shape.Clone(),
		strides: contiguousStrides(shape),
	}, nil
}

func contiguousStrides(shape Shape) []int64 {
	strides := make([]int64, len(shape))
	acc := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Shape returns a copy of the view's dimensions.
func (v *View[T]) Shape() Shape {
	return v.shape.Clone()
}

// Strides returns a copy of the view's element strides.
func (v *View[T]) Strides() []int64 {
	out := make([]int64, len(v.strides))
	copy(out, v.strides)
	return out
}

// At returns the element at the given indices. It panics when the index
// count does not match the rank or an index is out of range, the same
// contract as indexing a Go slice.
func (v *View[T]) At(indices ...int64) T {
	return v.data[int(v.checkedIndex(indices))]
}

// Set writes the element at the given indices, with At's panic contract.
func (v *View[T]) Set(value T, indices ...int64) {
	v.data[int(v.checkedIndex(indices))] = value
}

func (v *View[T]) checkedIndex(indices []int64) int64 {
	if len(indices) != len(v.shape) {
		panic(fmt.Sprintf("tensor: %d indices into rank %d view", len(indices), len(v.shape)))
	}
	idx := v.offset
	for i, n := range indices {
		if n < 0 || n >= v.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of size %d", n, i, v.shape[i]))
		}
		idx += n * v.strides[i]
	}
	return idx
}

func (v *View[T]) position(indices []int64) int64 {
	idx := v.offset
	for i, n := range indices {
		idx += n * v.strides[i]
	}
	return idx
}

// Permute reorders dimensions. perm must name every dimension exactly once;
// Permute(2, 0, 1) turns an HWC view into CHW.
func (v *View[T]) Permute(perm ...int) (*View[T], error) {
	if len(perm) != len(v.shape) {
		return nil, errors.InvalidArgument("permutation has %d entries for rank %d", len(perm), len(v.shape))
	}
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) {
			return nil, errors.InvalidArgument("permutation entry %d out of range", p)
		}
		if seen[p] {
			return nil, errors.InvalidArgument("permutation repeats dimension %d", p)
		}
		seen[p] = true
	}

	shape := make(Shape, len(perm))
	strides := make([]int64, len(perm))
	for i, p := range perm {
		shape[i] = v.shape[p]
		strides[i] = v.strides[p]
	}
	return &View[T]{data: v.data, shape: shape, strides: strides, offset: v.offset}, nil
}

// Narrow restricts one dimension to [start, start+length).
func (v *View[T]) Narrow(dim int, start, length int64) (*View[T], error) {
	if dim < 0 || dim >= len(v.shape) {
		return nil, errors.InvalidArgument("dimension %d out of range for rank %d", dim, len(v.shape))
	}
	if start < 0 || length < 0 || start+length > v.shape[dim] {
		return nil, errors.InvalidArgument("window [%d, %d) out of range for dimension %d of size %d",
			start, start+length, dim, v.shape[dim])
	}

	shape := v.shape.Clone()
	shape[dim] = length
	strides := make([]int64, len(v.strides))
	copy(strides, v.strides)
	return &View[T]{
		data:    v.data,
		shape:   shape,
		strides: strides,
		offset:  v.offset + start*v.strides[dim],
	}, nil
}

// IsContiguous reports whether the view walks its buffer in row-major order
// with no gaps. Dimensions of size one cannot affect the walk and are
// ignored.
func (v *View[T]) IsContiguous() bool {
	acc := int64(1)
	for i := len(v.shape) - 1; i >= 0; i-- {
		if v.shape[i] == 1 {
			continue
		}
		if v.strides[i] != acc {
			return false
		}
		acc *= v.shape[i]
	}
	return true
}

// Compact copies the window into a fresh contiguous row-major slice.
func (v *View[T]) Compact() []T {
	n := v.shape.Elements()
	out := make([]T, 0, n)
	if n == 0 {
		return out
	}

	idx := make([]int64, len(v.shape))
	for {
		out = append(out, v.data[int(v.position(idx))])

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < v.shape[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return out
}

// Contiguous returns the window as a contiguous slice, sharing the buffer
// when the layout already allows it and copying otherwise.
func (v *View[T]) Contiguous() []T {
	if v.IsContiguous() {
		n := v.shape.Elements()
		return v.data[int(v.offset) : int(v.offset)+int(n)]
	}
	return v.Compact()
}
