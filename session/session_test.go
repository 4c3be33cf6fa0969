package session

import (
	goerrors "errors"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/internal/enginetest"
	"github.com/wippyai/ort/tensor"
	"github.com/wippyai/ort/value"
)

var (
	storeOnce sync.Once
	store     *enginetest.Store
)

// testStore installs one fake engine for the whole test binary, serving a
// small two-input classifier.
func testStore() *enginetest.Store {
	storeOnce.Do(func() {
		store = enginetest.New()
		store.Model = enginetest.ModelSpec{
			Inputs: []enginetest.TensorSpec{
				{Name: "pixels", Elem: api.ElemFloat32, Dims: []int64{1, 3, 8, 8}},
				{Name: "mask", Elem: api.ElemInt64, Dims: []int64{1, -1}, Symbolic: []string{"", "tokens"}},
			},
			Outputs: []enginetest.TensorSpec{
				{Name: "scores", Elem: api.ElemFloat32, Dims: []int64{1, 4}},
				{Name: "classes", Elem: api.ElemInt64, Dims: []int64{1, 4}},
			},
			Metadata: enginetest.Meta{
				Producer:    "pytorch",
				GraphName:   "classifier",
				Domain:      "vision",
				Description: "tiny image classifier",
				GraphDesc:   "conv stack",
				Version:     7,
				Custom:      map[string]string{"author": "wippy", "license": "MIT"},
			},
		}
		store.ModelPath = "classifier.onnx"
		store.Providers = []string{"CPUExecutionProvider"}
		engine.Install(store.Table())
	})
	return store
}

func newEnv(t *testing.T) *Environment {
	t.Helper()
	testStore()
	env, err := NewEnvironment(nil)
	if err != nil {
		t.Fatalf("NewEnvironment: %v", err)
	}
	t.Cleanup(func() { env.Close() })
	return env
}

func openSession(t *testing.T, opts *Options) *Session {
	t.Helper()
	s, err := Open(newEnv(t), "classifier.onnx", opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pixelsInput(t *testing.T) *value.Tensor[float32] {
	t.Helper()
	in, err := value.NewTensor(make([]float32, 1*3*8*8), tensor.NewShape(1, 3, 8, 8))
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}
	t.Cleanup(func() { in.Close() })
	return in
}

func maskInput(t *testing.T) *value.Tensor[int64] {
	t.Helper()
	in, err := value.NewTensor([]int64{1, 1, 1}, tensor.NewShape(1, 3))
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}
	t.Cleanup(func() { in.Close() })
	return in
}

func i64Bytes(vals []int64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*8)
}

func TestOpenResolvesSignatures(t *testing.T) {
	st := testStore()
	s := openSession(t, nil)

	ins := s.Inputs()
	if len(ins) != 2 {
		t.Fatalf("inputs = %d, want 2", len(ins))
	}
	if ins[0].Name != "pixels" || ins[1].Name != "mask" {
		t.Errorf("input names = %q, %q", ins[0].Name, ins[1].Name)
	}
	if got := ins[0].Type.String(); got != "float32[1x3x8x8]" {
		t.Errorf("pixels type = %q", got)
	}
	if got := ins[1].Type.String(); got != "int64[1xtokens]" {
		t.Errorf("mask type = %q", got)
	}

	outs := s.Outputs()
	if len(outs) != 2 {
		t.Fatalf("outputs = %d, want 2", len(outs))
	}
	if outs[0].Name != "scores" || outs[1].Name != "classes" {
		t.Errorf("output names = %q, %q", outs[0].Name, outs[1].Name)
	}
	if got := outs[1].Type.String(); got != "int64[1x4]" {
		t.Errorf("classes type = %q", got)
	}

	if n := st.TypeInfoLeaks(); n != 0 {
		t.Errorf("type info leaks = %d", n)
	}
	if n := st.OutstandingAllocations(); n != 0 {
		t.Errorf("outstanding allocations = %d", n)
	}
}

func TestOpenWrongPath(t *testing.T) {
	env := newEnv(t)
	_, err := Open(env, "missing.onnx", nil)
	if err == nil {
		t.Fatal("no error for a path the engine rejects")
	}
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Code != api.ErrorNoSuchFile {
		t.Errorf("error = %v, want code %v", err, api.ErrorNoSuchFile)
	}
}

func TestOpenFromMemory(t *testing.T) {
	env := newEnv(t)

	s, err := OpenFromMemory(env, []byte{0x08, 0x01}, nil)
	if err != nil {
		t.Fatalf("OpenFromMemory: %v", err)
	}
	defer s.Close()
	if len(s.Inputs()) != 2 {
		t.Errorf("inputs = %d, want 2", len(s.Inputs()))
	}

	_, err = OpenFromMemory(env, nil, nil)
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Code != api.ErrorInvalidProtobuf {
		t.Errorf("empty model error = %v, want code %v", err, api.ErrorInvalidProtobuf)
	}
}

func TestRunDefaultOutputs(t *testing.T) {
	st := testStore()
	s := openSession(t, nil)
	pixels := pixelsInput(t)
	mask := maskInput(t)

	outs, err := s.Run([]NamedValue{
		{Name: "pixels", Value: pixels.Upcast()},
		{Name: "mask", Value: mask.Upcast()},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("outputs = %d, want 2", len(outs))
	}
	for _, o := range outs {
		defer o.Close()
	}

	scores, err := value.AsTensor[float32](outs[0])
	if err != nil {
		t.Fatalf("AsTensor: %v", err)
	}
	data, err := scores.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("scores len = %d, want 4", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Errorf("scores[%d] = %v, want 0", i, v)
		}
	}

	rec, ok := st.LastRun()
	if !ok {
		t.Fatal("no run recorded")
	}
	if len(rec.InputNames) != 2 || rec.InputNames[0] != "pixels" || rec.InputNames[1] != "mask" {
		t.Errorf("input names = %v", rec.InputNames)
	}
	if len(rec.OutputNames) != 2 || rec.OutputNames[0] != "scores" || rec.OutputNames[1] != "classes" {
		t.Errorf("output names = %v", rec.OutputNames)
	}
	if rec.Tag != "" {
		t.Errorf("tag = %q, want empty", rec.Tag)
	}
}

func TestRunWithConfig(t *testing.T) {
	st := testStore()
	s := openSession(t, nil)
	pixels := pixelsInput(t)
	mask := maskInput(t)

	st.Run = func(fake *enginetest.Store, inputs map[string]api.Value, outputs []string) ([]api.Value, error) {
		out := make([]api.Value, len(outputs))
		for i := range outputs {
			out[i] = fake.NewTensor(api.ElemInt64, []int64{1, 4}, i64Bytes([]int64{3, 1, 4, 1}))
		}
		return out, nil
	}
	defer func() { st.Run = nil }()

	outs, err := s.RunWithConfig(
		[]NamedValue{
			{Name: "pixels", Value: pixels.Upcast()},
			{Name: "mask", Value: mask.Upcast()},
		},
		&RunConfig{
			OutputNames: []string{"classes"},
			Tag:         "bench-42",
			Entries:     map[string]string{"memory.enable_memory_arena_shrinkage": "cpu:0"},
		},
	)
	if err != nil {
		t.Fatalf("RunWithConfig: %v", err)
	}
	if len(outs) != 1 {
		t.Fatalf("outputs = %d, want 1", len(outs))
	}
	defer outs[0].Close()

	classes, err := value.AsTensor[int64](outs[0])
	if err != nil {
		t.Fatalf("AsTensor: %v", err)
	}
	data, err := classes.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	want := []int64{3, 1, 4, 1}
	for i, v := range want {
		if data[i] != v {
			t.Errorf("classes[%d] = %d, want %d", i, data[i], v)
		}
	}

	rec, ok := st.LastRun()
	if !ok {
		t.Fatal("no run recorded")
	}
	if rec.Tag != "bench-42" {
		t.Errorf("tag = %q", rec.Tag)
	}
	if rec.Config["memory.enable_memory_arena_shrinkage"] != "cpu:0" {
		t.Errorf("run config = %v", rec.Config)
	}
	if len(rec.OutputNames) != 1 || rec.OutputNames[0] != "classes" {
		t.Errorf("output names = %v", rec.OutputNames)
	}
}

func TestRunErrors(t *testing.T) {
	s := openSession(t, nil)
	pixels := pixelsInput(t)

	t.Run("unknown input name", func(t *testing.T) {
		_, err := s.Run([]NamedValue{{Name: "nope", Value: pixels.Upcast()}})
		if err == nil || !strings.Contains(err.Error(), "unknown input name") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("closed input", func(t *testing.T) {
		dead, err := value.NewTensor([]float32{1}, tensor.NewShape(1))
		if err != nil {
			t.Fatalf("NewTensor: %v", err)
		}
		dv := dead.Upcast()
		dead.Close()
		_, err = s.Run([]NamedValue{{Name: "pixels", Value: dv}})
		if !goerrors.Is(err, value.ErrClosed) {
			t.Errorf("error = %v, want value.ErrClosed", err)
		}
	})

	t.Run("after close", func(t *testing.T) {
		s2, err := Open(newEnv(t), "classifier.onnx", nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		s2.Close()
		if _, err := s2.Run(nil); !goerrors.Is(err, ErrClosed) {
			t.Errorf("error = %v, want ErrClosed", err)
		}
	})
}

func TestSessionClose(t *testing.T) {
	st := testStore()
	s, err := Open(newEnv(t), "classifier.onnx", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	h, err := s.handle()
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := st.SessionReleases(h); got != 1 {
		t.Errorf("session releases = %d, want 1", got)
	}
	if _, err := s.Metadata(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("Metadata after close = %v, want ErrClosed", err)
	}
	if _, err := s.EndProfiling(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("EndProfiling after close = %v, want ErrClosed", err)
	}
}

func TestProfiling(t *testing.T) {
	st := testStore()

	s := openSession(t, &Options{ProfilePrefix: "trace"})
	ns, err := s.ProfilingStartTime()
	if err != nil {
		t.Fatalf("ProfilingStartTime: %v", err)
	}
	if ns != enginetest.ProfilingStartNs {
		t.Errorf("start time = %d, want %d", ns, enginetest.ProfilingStartNs)
	}
	name, err := s.EndProfiling()
	if err != nil {
		t.Fatalf("EndProfiling: %v", err)
	}
	if name != "trace_profile.json" {
		t.Errorf("report = %q", name)
	}

	plain := openSession(t, nil)
	name, err = plain.EndProfiling()
	if err != nil {
		t.Fatalf("EndProfiling: %v", err)
	}
	if name != "onnxruntime_profile.json" {
		t.Errorf("default report = %q", name)
	}

	if n := st.OutstandingAllocations(); n != 0 {
		t.Errorf("outstanding allocations = %d", n)
	}
}
