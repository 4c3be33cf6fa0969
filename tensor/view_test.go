package tensor

import (
	"testing"
)

func TestNewView(t *testing.T) {
	v, err := NewView([]float32{1, 2, 3, 4, 5, 6}, NewShape(2, 3))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if got := v.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := v.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v", got)
	}

	if _, err := NewView([]float32{1, 2, 3}, NewShape(2, 3)); err == nil {
		t.Error("length mismatch accepted")
	}
	if _, err := NewView([]float32{}, NewShape(-1)); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestViewSet(t *testing.T) {
	data := []int32{0, 0, 0, 0}
	v, err := NewView(data, NewShape(2, 2))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	v.Set(7, 1, 0)
	if data[2] != 7 {
		t.Errorf("Set did not write through: %v", data)
	}
}

func TestViewAt_Panics(t *testing.T) {
	v, _ := NewView([]float32{1, 2, 3, 4}, NewShape(2, 2))

	tests := []struct {
		name    string
		indices []int64
	}{
		{"wrong rank", []int64{1}},
		{"out of range", []int64{0, 2}},
		{"negative", []int64{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("At did not panic")
				}
			}()
			v.At(tt.indices...)
		})
	}
}

func TestViewPermute(t *testing.T) {
	// A 2x3 matrix transposed to 3x2.
	v, _ := NewView([]int64{1, 2, 3, 4, 5, 6}, NewShape(2, 3))
	p, err := v.Permute(1, 0)
	if err != nil {
		t.Fatalf("Permute: %v", err)
	}

	if !p.Shape().Equal(NewShape(3, 2)) {
		t.Fatalf("permuted shape %v", p.Shape())
	}
	if got := p.At(2, 1); got != 6 {
		t.Errorf("At(2,1) = %v, want 6", got)
	}
	if got := p.At(0, 1); got != 4 {
		t.Errorf("At(0,1) = %v, want 4", got)
	}
	if p.IsContiguous() {
		t.Error("transposed view reported contiguous")
	}

	if _, err := v.Permute(0); err == nil {
		t.Error("short permutation accepted")
	}
	if _, err := v.Permute(0, 0); err == nil {
		t.Error("repeated dimension accepted")
	}
	if _, err := v.Permute(0, 2); err == nil {
		t.Error("out of range dimension accepted")
	}
}

func TestViewNarrow(t *testing.T) {
	v, _ := NewView([]int32{1, 2, 3, 4, 5, 6, 7, 8, 9}, NewShape(3, 3))

	mid, err := v.Narrow(0, 1, 1)
	if err != nil {
		t.Fatalf("Narrow: %v", err)
	}
	if got := mid.At(0, 0); got != 4 {
		t.Errorf("narrowed At(0,0) = %v, want 4", got)
	}

	cols, err := v.Narrow(1, 1, 2)
	if err != nil {
		t.Fatalf("Narrow: %v", err)
	}
	if got := cols.At(2, 1); got != 9 {
		t.Errorf("narrowed At(2,1) = %v, want 9", got)
	}
	if cols.IsContiguous() {
		t.Error("column window reported contiguous")
	}

	if _, err := v.Narrow(2, 0, 1); err == nil {
		t.Error("bad dimension accepted")
	}
	if _, err := v.Narrow(0, 2, 2); err == nil {
		t.Error("overlong window accepted")
	}
}

func TestViewCompact(t *testing.T) {
	v, _ := NewView([]int64{1, 2, 3, 4, 5, 6}, NewShape(2, 3))
	p, _ := v.Permute(1, 0)

	got := p.Compact()
	want := []int64{1, 4, 2, 5, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("Compact length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Compact = %v, want %v", got, want)
		}
	}
}

func TestViewContiguous_SharesWhenPossible(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	v, _ := NewView(data, NewShape(4))

	s := v.Contiguous()
	s[0] = 42
	if data[0] != 42 {
		t.Error("contiguous view copied instead of sharing")
	}

	p, _ := v.Permute(0)
	if !p.IsContiguous() {
		t.Error("identity permutation broke contiguity")
	}
}

func TestViewScalar(t *testing.T) {
	v, err := NewView([]float64{3.5}, NewShape())
	if err != nil {
		t.Fatalf("NewView scalar: %v", err)
	}
	if got := v.At(); got != 3.5 {
		t.Errorf("At() = %v", got)
	}
	c := v.Compact()
	if len(c) != 1 || c[0] != 3.5 {
		t.Errorf("Compact = %v", c)
	}
}
