package tensor

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/ort/errors"
)

// Shape is the dimension list of a tensor. An empty Shape is a scalar.
type Shape []int64

// NewShape builds a shape from dimensions.
func NewShape(dims ...int64) Shape {
	return Shape(dims)
}

// Validate checks that every dimension is non-negative and that the element
// count fits in an int64.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 0 {
			return errors.InvalidArgument("shape dimension %d is %d; dimensions must be non-negative", i, d)
		}
	}
	total := int64(1)
	for i, d := range s {
		if d == 0 {
			return nil
		}
		if total > math.MaxInt64/d {
			return errors.InvalidArgument("shape element count overflows at dimension %d", i)
		}
		total *= d
	}
	return nil
}

// Elements returns the element count, the product of all dimensions. A
// shape with a negative dimension has no defined count and reports 0.
func (s Shape) Elements() int64 {
	total := int64(1)
	for _, d := range s {
		if d < 0 {
			return 0
		}
		total *= d
	}
	return total
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// String renders the shape as "2x3x4". A scalar renders as "scalar".
func (s Shape) String() string {
	if len(s) == 0 {
		return "scalar"
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteByte('x')
		}
		b.WriteString(strconv.FormatInt(d, 10))
	}
	return b.String()
}
