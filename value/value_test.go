package value

import (
	goerrors "errors"
	"sync"
	"testing"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/internal/enginetest"
	"github.com/wippyai/ort/tensor"
)

var (
	storeOnce sync.Once
	store     *enginetest.Store
)

// testStore backs the process table with the in-memory engine, once per
// test binary, and returns the store for assertions.
func testStore() *enginetest.Store {
	storeOnce.Do(func() {
		store = enginetest.New()
		engine.Install(store.Table())
	})
	return store
}

func TestWrap(t *testing.T) {
	s := testStore()

	if _, err := Wrap(0, true); err == nil {
		t.Fatal("null handle accepted")
	}

	h := s.NewTensor(api.ElemFloat32, []int64{2, 2}, nil)
	v, err := Wrap(h, true)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	kind, err := v.Type()
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	if kind != api.TypeTensor {
		t.Errorf("Type = %v, want tensor", kind)
	}
	ok, err := v.IsTensor()
	if err != nil {
		t.Fatalf("IsTensor: %v", err)
	}
	if !ok {
		t.Error("IsTensor = false for a tensor")
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := s.ValueReleases(h); n != 1 {
		t.Errorf("value released %d times, want 1", n)
	}
}

func TestWrapWithoutRelease(t *testing.T) {
	s := testStore()

	h := s.NewTensor(api.ElemInt64, []int64{1}, nil)
	v, err := Wrap(h, false)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := s.ValueReleases(h); n != 0 {
		t.Errorf("engine-owned handle released %d times", n)
	}
}

func TestCloneSharesOneRelease(t *testing.T) {
	s := testStore()

	h := s.NewTensor(api.ElemFloat32, []int64{3}, nil)
	v, err := Wrap(h, true)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	c, err := v.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if n := s.ValueReleases(h); n != 0 {
		t.Fatalf("released with an owner still open, %d times", n)
	}
	if _, err := v.Type(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("Type after close = %v, want ErrClosed", err)
	}

	shape, err := c.Shape()
	if err != nil {
		t.Fatalf("clone Shape after source close: %v", err)
	}
	if !shape.Equal(tensor.NewShape(3)) {
		t.Errorf("clone shape = %v", shape)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("clone Close: %v", err)
	}
	if n := s.ValueReleases(h); n != 1 {
		t.Errorf("value released %d times, want 1", n)
	}
	if _, err := c.Clone(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("Clone after close = %v, want ErrClosed", err)
	}
}

func TestShape(t *testing.T) {
	s := testStore()

	h := s.NewTensor(api.ElemFloat32, []int64{2, 3, 4}, nil)
	v, err := Wrap(h, true)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	defer v.Close()

	shape, err := v.Shape()
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if !shape.Equal(tensor.NewShape(2, 3, 4)) {
		t.Errorf("Shape = %v, want 2x3x4", shape)
	}
	if n := s.UnownedShapeReleases(); n != 0 {
		t.Errorf("%d view shape infos were released", n)
	}
}
