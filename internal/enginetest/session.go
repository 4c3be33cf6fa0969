package enginetest

import (
	"sort"
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/tensor"
)

// ProfilingStartNs is the profiling start time every fake session reports.
const ProfilingStartNs uint64 = 1234500000

type envRec struct {
	level     api.LoggingLevel
	logID     string
	telemetry bool
	releases  int
}

// ProviderConfig records one execution provider registration.
type ProviderConfig struct {
	Name    string
	Options map[string]string
}

// SessionConfig is a snapshot of the options a session was created with.
type SessionConfig struct {
	IntraThreads  int32
	InterThreads  int32
	ExecMode      int32
	OptLevel      int32
	LogSeverity   int32
	MemPattern    bool
	CPUArena      bool
	Deterministic bool
	Profiling     bool
	ProfilePrefix string
	Config        map[string]string
	DimOverrides  map[string]int64
	Providers     []ProviderConfig
}

type optionsRec struct {
	cfg      SessionConfig
	releases int
}

type runOptionsRec struct {
	tag      string
	config   map[string]string
	releases int
}

type sessionRec struct {
	model    ModelSpec
	cfg      SessionConfig
	releases int
}

type metaRec struct {
	meta     Meta
	releases int
}

// RunRecord captures the last Run call.
type RunRecord struct {
	Tag         string
	Config      map[string]string
	InputNames  []string
	OutputNames []string
}

// Environment entries.

func (s *Store) createEnv(level api.LoggingLevel, logID *byte, out *api.Env) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := api.Env(s.handle())
	s.envs[h] = &envRec{level: level, logID: api.GoStringPtr(logID)}
	s.lastEnv = h
	*out = h
	return 0
}

func (s *Store) releaseEnv(h api.Env) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.envs[h]; ok {
		rec.releases++
	}
}

func (s *Store) enableTelemetryEvents(h api.Env) api.Status {
	return s.setTelemetry(h, true)
}

func (s *Store) disableTelemetryEvents(h api.Env) api.Status {
	return s.setTelemetry(h, false)
}

func (s *Store) setTelemetry(h api.Env, on bool) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.envs[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown env %#x", h)
	}
	rec.telemetry = on
	return 0
}

func (s *Store) updateEnvWithCustomLogLevel(h api.Env, level api.LoggingLevel) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.envs[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown env %#x", h)
	}
	rec.level = level
	return 0
}

// Session options entries.

func (s *Store) createSessionOptions(out *api.SessionOptions) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := api.SessionOptions(s.handle())
	s.options[h] = &optionsRec{cfg: SessionConfig{
		LogSeverity:  -1,
		MemPattern:   true,
		CPUArena:     true,
		Config:       make(map[string]string),
		DimOverrides: make(map[string]int64),
	}}
	*out = h
	return 0
}

func (s *Store) releaseSessionOptions(h api.SessionOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.options[h]; ok {
		rec.releases++
	}
}

func (s *Store) withOptions(h api.SessionOptions, f func(*optionsRec)) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.options[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session options %#x", h)
	}
	f(rec)
	return 0
}

func (s *Store) setIntraOpNumThreads(h api.SessionOptions, n int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.IntraThreads = n })
}

func (s *Store) setInterOpNumThreads(h api.SessionOptions, n int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.InterThreads = n })
}

func (s *Store) setSessionExecutionMode(h api.SessionOptions, mode int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.ExecMode = mode })
}

func (s *Store) setSessionGraphOptimizationLevel(h api.SessionOptions, level int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.OptLevel = level })
}

func (s *Store) enableMemPattern(h api.SessionOptions) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.MemPattern = true })
}

func (s *Store) disableMemPattern(h api.SessionOptions) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.MemPattern = false })
}

func (s *Store) enableCpuMemArena(h api.SessionOptions) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.CPUArena = true })
}

func (s *Store) disableCpuMemArena(h api.SessionOptions) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.CPUArena = false })
}

func (s *Store) setSessionLogSeverityLevel(h api.SessionOptions, level int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.LogSeverity = level })
}

func (s *Store) enableProfiling(h api.SessionOptions, prefix *byte) api.Status {
	return s.withOptions(h, func(r *optionsRec) {
		r.cfg.Profiling = true
		r.cfg.ProfilePrefix = api.GoPath(prefix)
	})
}

func (s *Store) disableProfiling(h api.SessionOptions) api.Status {
	return s.withOptions(h, func(r *optionsRec) {
		r.cfg.Profiling = false
		r.cfg.ProfilePrefix = ""
	})
}

func (s *Store) addSessionConfigEntry(h api.SessionOptions, key, value *byte) api.Status {
	return s.withOptions(h, func(r *optionsRec) {
		r.cfg.Config[api.GoStringPtr(key)] = api.GoStringPtr(value)
	})
}

func (s *Store) addFreeDimensionOverrideByName(h api.SessionOptions, name *byte, value int64) api.Status {
	return s.withOptions(h, func(r *optionsRec) {
		r.cfg.DimOverrides[api.GoStringPtr(name)] = value
	})
}

func (s *Store) setDeterministicCompute(h api.SessionOptions, v int32) api.Status {
	return s.withOptions(h, func(r *optionsRec) { r.cfg.Deterministic = v != 0 })
}

func (s *Store) sessionOptionsAppendExecutionProvider(h api.SessionOptions, name *byte, keys, values **byte, n uintptr) api.Status {
	opts := make(map[string]string, n)
	if n > 0 {
		ks := unsafe.Slice(keys, n)
		vs := unsafe.Slice(values, n)
		for i := range ks {
			opts[api.GoStringPtr(ks[i])] = api.GoStringPtr(vs[i])
		}
	}
	return s.withOptions(h, func(r *optionsRec) {
		r.cfg.Providers = append(r.cfg.Providers, ProviderConfig{
			Name:    api.GoStringPtr(name),
			Options: opts,
		})
	})
}

// Run options entries.

func (s *Store) createRunOptions(out *api.RunOptions) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := api.RunOptions(s.handle())
	s.runOpts[h] = &runOptionsRec{config: make(map[string]string)}
	*out = h
	return 0
}

func (s *Store) releaseRunOptions(h api.RunOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.runOpts[h]; ok {
		rec.releases++
	}
}

func (s *Store) runOptionsSetRunTag(h api.RunOptions, tag *byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.runOpts[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown run options %#x", h)
	}
	rec.tag = api.GoStringPtr(tag)
	return 0
}

func (s *Store) addRunConfigEntry(h api.RunOptions, key, value *byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.runOpts[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown run options %#x", h)
	}
	rec.config[api.GoStringPtr(key)] = api.GoStringPtr(value)
	return 0
}

// Session entries.

func (s *Store) createSession(env api.Env, path *byte, opts api.SessionOptions, out *api.Session) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.envs[env]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown env %#x", env)
	}
	p := api.GoPath(path)
	if s.ModelPath != "" && p != s.ModelPath {
		return fail(api.ErrorNoSuchFile, "Load model from %s failed", p)
	}
	return s.newSessionLocked(opts, out)
}

func (s *Store) createSessionFromArray(env api.Env, data unsafe.Pointer, length uintptr, opts api.SessionOptions, out *api.Session) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.envs[env]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown env %#x", env)
	}
	if data == nil || length == 0 {
		return fail(api.ErrorInvalidProtobuf, "model bytes are empty")
	}
	return s.newSessionLocked(opts, out)
}

func (s *Store) newSessionLocked(opts api.SessionOptions, out *api.Session) api.Status {
	var cfg SessionConfig
	if rec, ok := s.options[opts]; ok {
		cfg = rec.cfg
	}
	h := api.Session(s.handle())
	s.sessions[h] = &sessionRec{model: s.Model, cfg: cfg}
	s.lastSession = h
	*out = h
	return 0
}

func (s *Store) releaseSession(h api.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.sessions[h]; ok {
		rec.releases++
	}
}

func (s *Store) sessionGetInputCount(h api.Session, out *uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	*out = uintptr(len(rec.model.Inputs))
	return 0
}

func (s *Store) sessionGetOutputCount(h api.Session, out *uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	*out = uintptr(len(rec.model.Outputs))
	return 0
}

func (s *Store) sessionGetInputName(h api.Session, idx uintptr, _ api.Allocator, out **byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	if int(idx) >= len(rec.model.Inputs) {
		return fail(api.ErrorInvalidArgument, "input %d out of range", idx)
	}
	*out = s.allocCString(rec.model.Inputs[idx].Name)
	return 0
}

func (s *Store) sessionGetOutputName(h api.Session, idx uintptr, _ api.Allocator, out **byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	if int(idx) >= len(rec.model.Outputs) {
		return fail(api.ErrorInvalidArgument, "output %d out of range", idx)
	}
	*out = s.allocCString(rec.model.Outputs[idx].Name)
	return 0
}

func (s *Store) sessionGetInputTypeInfo(h api.Session, idx uintptr, out *api.TypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	if int(idx) >= len(rec.model.Inputs) {
		return fail(api.ErrorInvalidArgument, "input %d out of range", idx)
	}
	*out = s.makeTensorTypeInfoLocked(rec.model.Inputs[idx])
	return 0
}

func (s *Store) sessionGetOutputTypeInfo(h api.Session, idx uintptr, out *api.TypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	if int(idx) >= len(rec.model.Outputs) {
		return fail(api.ErrorInvalidArgument, "output %d out of range", idx)
	}
	*out = s.makeTensorTypeInfoLocked(rec.model.Outputs[idx])
	return 0
}

func (s *Store) run(h api.Session, ro api.RunOptions, inNames **byte, inVals *api.Value, nIn uintptr, outNames **byte, nOut uintptr, outVals *api.Value) api.Status {
	s.mu.Lock()
	rec, ok := s.sessions[h]
	if !ok {
		s.mu.Unlock()
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}

	record := RunRecord{Config: make(map[string]string)}
	if roRec, ok := s.runOpts[ro]; ok {
		record.Tag = roRec.tag
		for k, v := range roRec.config {
			record.Config[k] = v
		}
	}

	inputs := make(map[string]api.Value, nIn)
	if nIn > 0 {
		names := unsafe.Slice(inNames, nIn)
		vals := unsafe.Slice(inVals, nIn)
		for i := range names {
			name := api.GoStringPtr(names[i])
			if !specHasName(rec.model.Inputs, name) {
				s.mu.Unlock()
				return fail(api.ErrorInvalidArgument, "unknown input name %q", name)
			}
			if _, ok := s.values[vals[i]]; !ok {
				s.mu.Unlock()
				return fail(api.ErrorInvalidArgument, "unknown value for input %q", name)
			}
			inputs[name] = vals[i]
			record.InputNames = append(record.InputNames, name)
		}
	}

	requested := make([]string, nOut)
	outSpecs := make([]TensorSpec, nOut)
	names := unsafe.Slice(outNames, nOut)
	for i := range names {
		name := api.GoStringPtr(names[i])
		spec, ok := specByName(rec.model.Outputs, name)
		if !ok {
			s.mu.Unlock()
			return fail(api.ErrorInvalidArgument, "unknown output name %q", name)
		}
		requested[i] = name
		outSpecs[i] = spec
		record.OutputNames = append(record.OutputNames, name)
	}
	hook := s.Run
	s.lastRun = &record
	s.mu.Unlock()

	var produced []api.Value
	var err error
	if hook != nil {
		produced, err = hook(s, inputs, requested)
	} else {
		produced = make([]api.Value, len(outSpecs))
		for i, spec := range outSpecs {
			size := elemCount(spec.Dims) * int64(tensor.SizeOf(spec.Elem))
			produced[i] = s.NewTensor(spec.Elem, spec.Dims, make([]byte, size))
		}
	}
	if err != nil {
		return errors.Seal(err)
	}
	if len(produced) != int(nOut) {
		return fail(api.ErrorFail, "hook produced %d outputs, want %d", len(produced), nOut)
	}

	dst := unsafe.Slice(outVals, nOut)
	copy(dst, produced)
	return 0
}

func specHasName(specs []TensorSpec, name string) bool {
	_, ok := specByName(specs, name)
	return ok
}

func specByName(specs []TensorSpec, name string) (TensorSpec, bool) {
	for _, spec := range specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return TensorSpec{}, false
}

func (s *Store) sessionEndProfiling(h api.Session, _ api.Allocator, out **byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	name := rec.cfg.ProfilePrefix
	if name == "" {
		name = "onnxruntime"
	}
	*out = s.allocCString(name + "_profile.json")
	return 0
}

func (s *Store) sessionGetProfilingStartTimeNs(h api.Session, out *uint64) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[h]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	*out = ProfilingStartNs
	return 0
}

// Model metadata entries.

func (s *Store) sessionGetModelMetadata(h api.Session, out *api.ModelMetadata) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown session %#x", h)
	}
	m := api.ModelMetadata(s.handle())
	s.metas[m] = &metaRec{meta: rec.model.Metadata}
	*out = m
	return 0
}

func (s *Store) releaseModelMetadata(h api.ModelMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.metas[h]; ok {
		rec.releases++
	}
}

func (s *Store) metaString(h api.ModelMetadata, out **byte, pick func(Meta) string) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.metas[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown metadata %#x", h)
	}
	*out = s.allocCString(pick(rec.meta))
	return 0
}

func (s *Store) modelMetadataGetProducerName(h api.ModelMetadata, _ api.Allocator, out **byte) api.Status {
	return s.metaString(h, out, func(m Meta) string { return m.Producer })
}

func (s *Store) modelMetadataGetGraphName(h api.ModelMetadata, _ api.Allocator, out **byte) api.Status {
	return s.metaString(h, out, func(m Meta) string { return m.GraphName })
}

func (s *Store) modelMetadataGetDomain(h api.ModelMetadata, _ api.Allocator, out **byte) api.Status {
	return s.metaString(h, out, func(m Meta) string { return m.Domain })
}

func (s *Store) modelMetadataGetDescription(h api.ModelMetadata, _ api.Allocator, out **byte) api.Status {
	return s.metaString(h, out, func(m Meta) string { return m.Description })
}

func (s *Store) modelMetadataGetGraphDescription(h api.ModelMetadata, _ api.Allocator, out **byte) api.Status {
	return s.metaString(h, out, func(m Meta) string { return m.GraphDesc })
}

func (s *Store) modelMetadataGetVersion(h api.ModelMetadata, out *int64) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.metas[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown metadata %#x", h)
	}
	*out = rec.meta.Version
	return 0
}

func (s *Store) modelMetadataLookupCustomMetadataMap(h api.ModelMetadata, _ api.Allocator, key *byte, out **byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.metas[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown metadata %#x", h)
	}
	value, ok := rec.meta.Custom[api.GoStringPtr(key)]
	if !ok {
		*out = nil
		return 0
	}
	*out = s.allocCString(value)
	return 0
}

func (s *Store) modelMetadataGetCustomMetadataMapKeys(h api.ModelMetadata, _ api.Allocator, out ***byte, n *int64) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.metas[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown metadata %#x", h)
	}
	keys := make([]string, 0, len(rec.meta.Custom))
	for k := range rec.meta.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	*n = int64(len(keys))
	if len(keys) == 0 {
		*out = nil
		return 0
	}
	arr := make([]*byte, len(keys))
	for i, k := range keys {
		arr[i] = s.allocCString(k)
	}
	s.arrays[uintptr(unsafe.Pointer(&arr[0]))] = arr
	*out = &arr[0]
	return 0
}

// Provider entries.

func (s *Store) getAvailableProviders(out ***byte, n *int32) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Providers) == 0 {
		*out = nil
		*n = 0
		return 0
	}
	arr := make([]*byte, len(s.Providers))
	for i, p := range s.Providers {
		arr[i] = s.staticCString(p)
	}
	s.arrays[uintptr(unsafe.Pointer(&arr[0]))] = arr
	s.providerArrays++
	*out = &arr[0]
	*n = int32(len(s.Providers))
	return 0
}

func (s *Store) releaseAvailableProviders(ptr **byte, _ int32) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uintptr(unsafe.Pointer(ptr))
	if _, ok := s.arrays[key]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown provider array %#x", key)
	}
	delete(s.arrays, key)
	s.providerArrays--
	return 0
}

// Snapshot accessors.

// LastEnv returns the most recently created environment's state.
func (s *Store) LastEnv() (level api.LoggingLevel, logID string, telemetry bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.envs[s.lastEnv]
	if !found {
		return 0, "", false, false
	}
	return rec.level, rec.logID, rec.telemetry, true
}

// LastSessionConfig returns the options snapshot of the most recently
// created session.
func (s *Store) LastSessionConfig() (SessionConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[s.lastSession]
	if !ok {
		return SessionConfig{}, false
	}
	return rec.cfg, true
}

// LastRun returns the record of the most recent Run call.
func (s *Store) LastRun() (RunRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRun == nil {
		return RunRecord{}, false
	}
	return *s.lastRun, true
}

// SessionReleases returns how many times a session handle was released.
func (s *Store) SessionReleases(h api.Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.sessions[h]; ok {
		return rec.releases
	}
	return 0
}

// EnvReleases returns how many times an env handle was released.
func (s *Store) EnvReleases(h api.Env) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.envs[h]; ok {
		return rec.releases
	}
	return 0
}

// OptionsReleases returns how many times a session options handle was
// released.
func (s *Store) OptionsReleases(h api.SessionOptions) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.options[h]; ok {
		return rec.releases
	}
	return 0
}

// MetadataLeaks counts metadata handles that were never released.
func (s *Store) MetadataLeaks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.metas {
		if rec.releases == 0 {
			n++
		}
	}
	return n
}
