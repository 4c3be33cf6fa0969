package session

import (
	"runtime"
	"sort"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/providers"
)

// ExecutionMode selects how the session schedules graph nodes.
type ExecutionMode int32

const (
	// ExecDefault keeps the engine's mode, which runs nodes sequentially.
	ExecDefault ExecutionMode = iota
	ExecSequential
	ExecParallel
)

func (m ExecutionMode) engine() (int32, bool) {
	switch m {
	case ExecSequential:
		return 0, true
	case ExecParallel:
		return 1, true
	}
	return 0, false
}

// OptimizationLevel bounds the graph rewriting the engine performs while
// loading a model.
type OptimizationLevel int32

const (
	// OptDefault keeps the engine's level, which applies every optimization.
	OptDefault OptimizationLevel = iota
	OptDisable
	OptBasic
	OptExtended
	OptAll
)

func (l OptimizationLevel) engine() (int32, bool) {
	switch l {
	case OptDisable:
		return 0, true
	case OptBasic:
		return 1, true
	case OptExtended:
		return 2, true
	case OptAll:
		return 99, true
	}
	return 0, false
}

// Options holds configuration for session creation. The zero value keeps
// the engine's defaults for every knob.
type Options struct {
	// IntraThreads caps the threads used inside a single operator.
	// 0 lets the engine decide.
	IntraThreads int32

	// InterThreads caps the threads running independent operators when
	// execution is parallel. 0 lets the engine decide.
	InterThreads int32

	// Execution selects sequential or parallel node scheduling.
	Execution ExecutionMode

	// Optimization bounds graph rewriting during load.
	Optimization OptimizationLevel

	// LogSeverity overrides the environment's log severity for this
	// session. LogDefault keeps the environment's level.
	LogSeverity LogLevel

	// DisableMemPattern turns off memory pattern planning.
	DisableMemPattern bool

	// DisableCPUArena turns off the CPU memory arena.
	DisableCPUArena bool

	// Deterministic forces deterministic kernels where available.
	Deterministic bool

	// ProfilePrefix enables profiling. Report files are written under this
	// path prefix; EndProfiling returns the final name.
	ProfilePrefix string

	// Entries are free-form session configuration key/value pairs, passed
	// through to the engine untouched.
	Entries map[string]string

	// DimOverrides pin named symbolic dimensions to fixed sizes.
	DimOverrides map[string]int64

	// Providers are execution providers to register, in priority order.
	// The engine falls back to CPU for nodes no provider claims.
	Providers []providers.Provider
}

// buildOptions renders o into an engine options handle. The caller releases
// the handle once the session is created.
func buildOptions(o *Options) (api.SessionOptions, error) {
	t := engine.Table()
	var h api.SessionOptions
	if err := errors.FromStatus(t.CreateSessionOptions(&h)); err != nil {
		return 0, err
	}
	if o == nil {
		return h, nil
	}
	if err := applyOptions(t, h, o); err != nil {
		t.ReleaseSessionOptions(h)
		return 0, err
	}
	return h, nil
}

func applyOptions(t *api.Table, h api.SessionOptions, o *Options) error {
	if o.IntraThreads > 0 {
		if err := errors.FromStatus(t.SetIntraOpNumThreads(h, o.IntraThreads)); err != nil {
			return err
		}
	}
	if o.InterThreads > 0 {
		if err := errors.FromStatus(t.SetInterOpNumThreads(h, o.InterThreads)); err != nil {
			return err
		}
	}
	if mode, ok := o.Execution.engine(); ok {
		if err := errors.FromStatus(t.SetSessionExecutionMode(h, mode)); err != nil {
			return err
		}
	}
	if level, ok := o.Optimization.engine(); ok {
		if err := errors.FromStatus(t.SetSessionGraphOptimizationLevel(h, level)); err != nil {
			return err
		}
	}
	if lvl, ok := o.LogSeverity.engine(); ok {
		if err := errors.FromStatus(t.SetSessionLogSeverityLevel(h, int32(lvl))); err != nil {
			return err
		}
	}
	if o.DisableMemPattern {
		if err := errors.FromStatus(t.DisableMemPattern(h)); err != nil {
			return err
		}
	}
	if o.DisableCPUArena {
		if err := errors.FromStatus(t.DisableCpuMemArena(h)); err != nil {
			return err
		}
	}
	if o.Deterministic {
		if err := errors.FromStatus(t.SetDeterministicCompute(h, 1)); err != nil {
			return err
		}
	}
	if o.ProfilePrefix != "" {
		prefix := api.CPath(o.ProfilePrefix)
		if err := errors.FromStatus(t.EnableProfiling(h, &prefix[0])); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(o.Entries) {
		if err := errors.FromStatus(t.AddSessionConfigEntry(h, api.CString(k), api.CString(o.Entries[k]))); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(o.DimOverrides) {
		if err := errors.FromStatus(t.AddFreeDimensionOverrideByName(h, api.CString(k), o.DimOverrides[k])); err != nil {
			return err
		}
	}
	for _, p := range o.Providers {
		if err := appendProvider(t, h, p); err != nil {
			return err
		}
	}
	return nil
}

func appendProvider(t *api.Table, h api.SessionOptions, p providers.Provider) error {
	opts := p.Options()
	keys := sortedKeys(opts)

	var keyPtrs, valPtrs []*byte
	var keysArg, valsArg **byte
	if len(keys) > 0 {
		vals := make([]string, len(keys))
		for i, k := range keys {
			vals[i] = opts[k]
		}
		keyPtrs = api.CStrings(keys)
		valPtrs = api.CStrings(vals)
		keysArg, valsArg = &keyPtrs[0], &valPtrs[0]
	}

	st := t.SessionOptionsAppendExecutionProvider(h, api.CString(p.Name()), keysArg, valsArg, uintptr(len(keys)))
	runtime.KeepAlive(keyPtrs)
	runtime.KeepAlive(valPtrs)
	return errors.FromStatus(st)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
