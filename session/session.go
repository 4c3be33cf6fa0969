package session

import (
	goerrors "errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/memory"
	"github.com/wippyai/ort/value"
)

// ErrClosed is returned when an environment, session or metadata handle is
// used after Close.
var ErrClosed = goerrors.New("used after close")

// IOSpec describes one model input or output.
type IOSpec struct {
	Name string
	Type *value.ValueType
}

// Session is a loaded model ready to run. A session is safe for concurrent
// Run calls; Close must not race them.
type Session struct {
	h      api.Session
	closed atomic.Bool
	alloc  memory.Allocator

	inputs  []IOSpec
	outputs []IOSpec
}

// Open loads a model from a file. opts may be nil for engine defaults.
func Open(env *Environment, path string, opts *Options) (*Session, error) {
	eh, err := env.Handle()
	if err != nil {
		return nil, err
	}
	oh, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	t := engine.Table()
	defer t.ReleaseSessionOptions(oh)

	cpath := api.CPath(path)
	var h api.Session
	if err := errors.FromStatus(t.CreateSession(eh, &cpath[0], oh, &h)); err != nil {
		return nil, err
	}
	s, err := newSession(h)
	if err != nil {
		return nil, err
	}
	Logger().Debug("session opened",
		zap.String("model", path),
		zap.Int("inputs", len(s.inputs)),
		zap.Int("outputs", len(s.outputs)))
	return s, nil
}

// OpenFromMemory loads a model from an in-memory serialized graph. The
// engine copies what it needs, so the caller may reuse model afterwards.
func OpenFromMemory(env *Environment, model []byte, opts *Options) (*Session, error) {
	eh, err := env.Handle()
	if err != nil {
		return nil, err
	}
	oh, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	t := engine.Table()
	defer t.ReleaseSessionOptions(oh)

	var data unsafe.Pointer
	if len(model) > 0 {
		data = unsafe.Pointer(&model[0])
	}
	var h api.Session
	st := t.CreateSessionFromArray(eh, data, uintptr(len(model)), oh, &h)
	runtime.KeepAlive(model)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	s, err := newSession(h)
	if err != nil {
		return nil, err
	}
	Logger().Debug("session opened",
		zap.Int("model_bytes", len(model)),
		zap.Int("inputs", len(s.inputs)),
		zap.Int("outputs", len(s.outputs)))
	return s, nil
}

// newSession resolves the model's input and output signatures eagerly so
// Inputs and Outputs never touch the engine again.
func newSession(h api.Session) (*Session, error) {
	t := engine.Table()
	alloc, err := memory.Default()
	if err != nil {
		t.ReleaseSession(h)
		return nil, err
	}
	inputs, err := ioSpecs(h, alloc, t.SessionGetInputCount, t.SessionGetInputName, t.SessionGetInputTypeInfo)
	if err != nil {
		t.ReleaseSession(h)
		return nil, err
	}
	outputs, err := ioSpecs(h, alloc, t.SessionGetOutputCount, t.SessionGetOutputName, t.SessionGetOutputTypeInfo)
	if err != nil {
		t.ReleaseSession(h)
		return nil, err
	}
	return &Session{h: h, alloc: alloc, inputs: inputs, outputs: outputs}, nil
}

func ioSpecs(
	h api.Session,
	alloc memory.Allocator,
	count func(api.Session, *uintptr) api.Status,
	name func(api.Session, uintptr, api.Allocator, **byte) api.Status,
	info func(api.Session, uintptr, *api.TypeInfo) api.Status,
) ([]IOSpec, error) {
	t := engine.Table()
	var n uintptr
	if err := errors.FromStatus(count(h, &n)); err != nil {
		return nil, err
	}
	specs := make([]IOSpec, n)
	for i := uintptr(0); i < n; i++ {
		var cname *byte
		if err := errors.FromStatus(name(h, i, alloc.Handle(), &cname)); err != nil {
			return nil, err
		}
		specs[i].Name = api.GoStringPtr(cname)
		if err := alloc.Free(unsafe.Pointer(cname)); err != nil {
			return nil, err
		}

		var ti api.TypeInfo
		if err := errors.FromStatus(info(h, i, &ti)); err != nil {
			return nil, err
		}
		vt, err := value.TypeFromTypeInfo(ti)
		t.ReleaseTypeInfo(ti)
		if err != nil {
			return nil, err
		}
		specs[i].Type = vt
	}
	return specs, nil
}

// Inputs describes the model's inputs in graph order.
func (s *Session) Inputs() []IOSpec {
	return s.inputs
}

// Outputs describes the model's outputs in graph order.
func (s *Session) Outputs() []IOSpec {
	return s.outputs
}

func (s *Session) handle() (api.Session, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	return s.h, nil
}

// NamedValue binds an input name to the value fed into it.
type NamedValue struct {
	Name  string
	Value *value.Value
}

// RunConfig adjusts a single Run call.
type RunConfig struct {
	// OutputNames selects and orders the outputs to compute. Empty means
	// every model output in graph order.
	OutputNames []string

	// Tag labels the run in engine logs and profiles.
	Tag string

	// Entries are free-form run configuration key/value pairs.
	Entries map[string]string
}

// Run executes the model over inputs and returns every model output in
// graph order. The returned values are owned by the caller and must be
// closed.
func (s *Session) Run(inputs []NamedValue) ([]*value.Value, error) {
	return s.RunWithConfig(inputs, nil)
}

// RunWithConfig executes the model with per-run configuration. cfg may be
// nil, which is the same as Run.
func (s *Session) RunWithConfig(inputs []NamedValue, cfg *RunConfig) ([]*value.Value, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	t := engine.Table()

	var ro api.RunOptions
	if cfg != nil && (cfg.Tag != "" || len(cfg.Entries) > 0) {
		ro, err = buildRunOptions(t, cfg)
		if err != nil {
			return nil, err
		}
		defer t.ReleaseRunOptions(ro)
	}

	inNames := make([]string, len(inputs))
	inVals := make([]api.Value, len(inputs))
	for i, in := range inputs {
		vh, err := in.Value.Handle()
		if err != nil {
			return nil, errors.Wrap(api.ErrorInvalidArgument, fmt.Sprintf("input %q", in.Name), err)
		}
		inNames[i] = in.Name
		inVals[i] = vh
	}

	var outNames []string
	if cfg != nil && len(cfg.OutputNames) > 0 {
		outNames = cfg.OutputNames
	} else {
		outNames = make([]string, len(s.outputs))
		for i, o := range s.outputs {
			outNames[i] = o.Name
		}
	}

	inNamePtrs := api.CStrings(inNames)
	outNamePtrs := api.CStrings(outNames)
	outVals := make([]api.Value, len(outNames))

	var inNamesArg **byte
	var inValsArg *api.Value
	if len(inputs) > 0 {
		inNamesArg = &inNamePtrs[0]
		inValsArg = &inVals[0]
	}
	var outNamesArg **byte
	var outValsArg *api.Value
	if len(outNames) > 0 {
		outNamesArg = &outNamePtrs[0]
		outValsArg = &outVals[0]
	}

	st := t.Run(h, ro, inNamesArg, inValsArg, uintptr(len(inputs)), outNamesArg, uintptr(len(outNames)), outValsArg)
	runtime.KeepAlive(inputs)
	runtime.KeepAlive(inNamePtrs)
	runtime.KeepAlive(outNamePtrs)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}

	out := make([]*value.Value, len(outVals))
	for i, vh := range outVals {
		v, err := value.Wrap(vh, true)
		if err != nil {
			for _, done := range out[:i] {
				done.Close()
			}
			for _, rest := range outVals[i+1:] {
				if rest != 0 {
					t.ReleaseValue(rest)
				}
			}
			return nil, errors.Wrap(api.ErrorFail, fmt.Sprintf("output %q", outNames[i]), err)
		}
		out[i] = v
	}
	return out, nil
}

func buildRunOptions(t *api.Table, cfg *RunConfig) (api.RunOptions, error) {
	var ro api.RunOptions
	if err := errors.FromStatus(t.CreateRunOptions(&ro)); err != nil {
		return 0, err
	}
	if cfg.Tag != "" {
		if err := errors.FromStatus(t.RunOptionsSetRunTag(ro, api.CString(cfg.Tag))); err != nil {
			t.ReleaseRunOptions(ro)
			return 0, err
		}
	}
	for _, k := range sortedKeys(cfg.Entries) {
		if err := errors.FromStatus(t.AddRunConfigEntry(ro, api.CString(k), api.CString(cfg.Entries[k]))); err != nil {
			t.ReleaseRunOptions(ro)
			return 0, err
		}
	}
	return ro, nil
}

// Metadata fetches the model's metadata. The caller closes it; the session
// may be closed first.
func (s *Session) Metadata() (*Metadata, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}
	var mh api.ModelMetadata
	if err := errors.FromStatus(engine.Table().SessionGetModelMetadata(h, &mh)); err != nil {
		return nil, err
	}
	return &Metadata{h: mh, alloc: s.alloc}, nil
}

// EndProfiling stops profiling and returns the report file name.
func (s *Session) EndProfiling() (string, error) {
	h, err := s.handle()
	if err != nil {
		return "", err
	}
	var p *byte
	if err := errors.FromStatus(engine.Table().SessionEndProfiling(h, s.alloc.Handle(), &p)); err != nil {
		return "", err
	}
	name := api.GoStringPtr(p)
	if err := s.alloc.Free(unsafe.Pointer(p)); err != nil {
		return "", err
	}
	return name, nil
}

// ProfilingStartTime reports when profiling started, in nanoseconds on the
// engine's clock.
func (s *Session) ProfilingStartTime() (uint64, error) {
	h, err := s.handle()
	if err != nil {
		return 0, err
	}
	var ns uint64
	if err := errors.FromStatus(engine.Table().SessionGetProfilingStartTimeNs(h, &ns)); err != nil {
		return 0, err
	}
	return ns, nil
}

// Close releases the session. Values produced by Run stay valid and are
// closed independently. Further calls do nothing.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	engine.Table().ReleaseSession(s.h)
	return nil
}
