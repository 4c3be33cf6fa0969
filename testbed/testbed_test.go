// Integration tests against a real ONNX Runtime shared library.
//
// The whole package is skipped unless ORT_DYLIB_PATH points at a library.
// TestModelSession additionally needs TESTBED_MODEL pointing at an .onnx
// file.
package testbed

import (
	"os"
	"testing"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/memory"
	"github.com/wippyai/ort/providers"
	"github.com/wippyai/ort/session"
	"github.com/wippyai/ort/tensor"
	"github.com/wippyai/ort/value"
)

func requireLib(t *testing.T) {
	t.Helper()
	if os.Getenv("ORT_DYLIB_PATH") == "" {
		t.Skip("ORT_DYLIB_PATH not set")
	}
}

func newEnv(t *testing.T) *session.Environment {
	t.Helper()
	env, err := session.NewEnvironment(&session.EnvConfig{
		Name:  "testbed",
		Level: session.LogError,
	})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	t.Cleanup(func() { env.Close() })
	return env
}

func TestEngineResolves(t *testing.T) {
	requireLib(t)

	engine.Table()
	if engine.Version() == "" {
		t.Fatal("resolved engine reports empty version")
	}
	if engine.Path() == "" {
		t.Fatal("resolved engine reports empty path")
	}
	t.Logf("engine %s at %s", engine.Version(), engine.Path())

	if info := engine.BuildInfo(); info != "" {
		t.Logf("build %s", info)
	}
}

func TestEnvironmentLifecycle(t *testing.T) {
	requireLib(t)

	env, err := session.NewEnvironment(&session.EnvConfig{
		Name:  "testbed",
		Level: session.LogError,
	})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if err := env.UpdateLogLevel(session.LogFatal); err != nil {
		t.Errorf("update log level: %v", err)
	}
	if err := env.SetTelemetry(false); err != nil {
		t.Errorf("set telemetry: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestProvidersAvailable(t *testing.T) {
	requireLib(t)
	newEnv(t)

	avail, err := providers.Available()
	if err != nil {
		t.Fatalf("available providers: %v", err)
	}
	found := false
	for _, name := range avail {
		if name == "CPUExecutionProvider" {
			found = true
		}
	}
	if !found {
		t.Errorf("CPUExecutionProvider missing from %v", avail)
	}
}

func TestTensorRoundTrip(t *testing.T) {
	requireLib(t)
	newEnv(t)

	data := []float32{1, 2, 3, 4, 5, 6}
	ten, err := value.NewTensor(data, tensor.NewShape(2, 3))
	if err != nil {
		t.Fatalf("create tensor: %v", err)
	}
	defer ten.Close()

	shape, err := ten.Shape()
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if shape.String() != "2x3" {
		t.Errorf("shape = %s, want 2x3", shape)
	}
	got, err := ten.Data()
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	for i, want := range data {
		if got[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want)
		}
	}

	info, err := ten.Memory()
	if err != nil {
		t.Fatalf("memory info: %v", err)
	}
	defer info.Close()
	name, err := info.Name()
	if err != nil {
		t.Fatalf("memory name: %v", err)
	}
	if name != "Cpu" {
		t.Errorf("memory name = %q, want Cpu", name)
	}
}

func TestStringTensorRoundTrip(t *testing.T) {
	requireLib(t)
	newEnv(t)

	strs := []string{"alpha", "", "gamma"}
	ten, err := value.NewStringTensor(strs, tensor.NewShape(3))
	if err != nil {
		t.Fatalf("create string tensor: %v", err)
	}
	defer ten.Close()

	got, err := ten.Strings()
	if err != nil {
		t.Fatalf("read strings: %v", err)
	}
	if len(got) != len(strs) {
		t.Fatalf("got %d strings, want %d", len(got), len(strs))
	}
	for i, want := range strs {
		if got[i] != want {
			t.Errorf("strings[%d] = %q, want %q", i, got[i], want)
		}
	}
}

func TestModelSession(t *testing.T) {
	requireLib(t)
	model := os.Getenv("TESTBED_MODEL")
	if model == "" {
		t.Skip("TESTBED_MODEL not set")
	}

	env := newEnv(t)
	s, err := session.Open(env, model, &session.Options{
		Optimization: session.OptBasic,
		LogSeverity:  session.LogError,
	})
	if err != nil {
		t.Fatalf("open %s: %v", model, err)
	}
	defer s.Close()

	for _, spec := range s.Inputs() {
		t.Logf("input  %s  %s", spec.Name, spec.Type)
	}
	for _, spec := range s.Outputs() {
		t.Logf("output %s  %s", spec.Name, spec.Type)
	}

	md, err := s.Metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	defer md.Close()
	graph, err := md.GraphName()
	if err != nil {
		t.Fatalf("graph name: %v", err)
	}
	t.Logf("graph %q", graph)

	inputs, ok := fabricateInputs(t, s)
	if !ok {
		t.Skip("model has non-tensor or variable-width inputs")
	}
	outs, err := s.Run(inputs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, out := range outs {
		vt, err := out.ValueType()
		if err != nil {
			t.Fatalf("output type: %v", err)
		}
		t.Logf("%s = %s", s.Outputs()[i].Name, vt)
		out.Close()
	}
}

// fabricateInputs builds an all-zero tensor for every input, pinning dynamic
// dimensions to 1. Returns false when an input cannot be fabricated.
func fabricateInputs(t *testing.T, s *session.Session) ([]session.NamedValue, bool) {
	t.Helper()
	var inputs []session.NamedValue
	for _, spec := range s.Inputs() {
		vt := spec.Type
		if vt.Kind != api.TypeTensor {
			return nil, false
		}
		width := tensor.SizeOf(vt.Elem)
		if width == 0 {
			return nil, false
		}
		dims := make([]int64, len(vt.Dims))
		for i, d := range vt.Dims {
			if d < 1 {
				d = 1
			}
			dims[i] = d
		}
		shape := tensor.NewShape(dims...)
		ten, err := value.NewDynTensor(vt.Elem, make([]byte, shape.Elements()*int64(width)), shape)
		if err != nil {
			t.Fatalf("fabricate %s: %v", spec.Name, err)
		}
		t.Cleanup(func() { ten.Close() })
		inputs = append(inputs, session.NamedValue{Name: spec.Name, Value: ten.Upcast()})
	}
	return inputs, true
}

func TestAllocatorFree(t *testing.T) {
	requireLib(t)
	newEnv(t)

	alloc, err := memory.Default()
	if err != nil {
		t.Fatalf("default allocator: %v", err)
	}
	if err := alloc.Free(nil); err != nil {
		t.Errorf("free nil: %v", err)
	}
}
