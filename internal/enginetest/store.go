// Package enginetest provides an in-memory double for the engine's API
// table. Tests install it once per process with engine.Install and drive
// the public packages against it without a runtime library.
//
// Handles issued by the store are even, so they can never collide with
// sealed status handles. Failures come back as sealed statuses, which the
// status bridge unseals into the original errors.
package enginetest

import (
	goerrors "errors"
	"sync"
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/errors"
)

// TensorSpec describes one session input or output.
type TensorSpec struct {
	Name     string
	Elem     api.ElementDataType
	Dims     []int64
	Symbolic []string
}

// Meta is the model metadata served by fake sessions.
type Meta struct {
	Producer    string
	GraphName   string
	Domain      string
	Description string
	GraphDesc   string
	Version     int64
	Custom      map[string]string
}

// ModelSpec describes the model every fake session serves.
type ModelSpec struct {
	Inputs   []TensorSpec
	Outputs  []TensorSpec
	Metadata Meta
}

// RunHook computes output values for a Run call. inputs is keyed by input
// name; outputs must follow the order of the requested names.
type RunHook func(s *Store, inputs map[string]api.Value, outputs []string) ([]api.Value, error)

type valueRec struct {
	elem     api.ElementDataType
	dims     []int64
	data     []byte         // engine-owned backing, nil for user data
	ptr      unsafe.Pointer // points at data or at user memory
	strs     []string       // string tensor payload
	info     api.MemoryInfo // placement, 0 means the shared CPU info
	releases int
}

type infoRec struct {
	name     string
	alloc    api.AllocatorType
	mem      api.MemType
	dev      api.DeviceType
	owned    bool
	releases int
}

type shapeRec struct {
	elem     api.ElementDataType
	dims     []int64
	symbolic []string
	owned    bool
	releases int
}

type typeInfoRec struct {
	onnx     api.ONNXType
	shape    api.TensorTypeAndShapeInfo // tensor case, unowned view
	seq      api.SequenceTypeInfo       // sequence case, unowned view
	mp       api.MapTypeInfo            // map case, unowned view
	releases int
}

type seqInfoRec struct {
	elem     func() api.TypeInfo // makes a fresh owned TypeInfo per call
	releases int
}

type mapInfoRec struct {
	key      api.ElementDataType
	value    func() api.TypeInfo
	releases int
}

// Store is the fake engine state. Create one with New, install its table,
// then drive the public packages. The exported fields configure behavior;
// set them before the code under test touches the table.
type Store struct {
	mu sync.Mutex

	next uintptr

	values    map[api.Value]*valueRec
	infos     map[api.MemoryInfo]*infoRec
	shapes    map[api.TensorTypeAndShapeInfo]*shapeRec
	typeInfos map[api.TypeInfo]*typeInfoRec
	seqInfos  map[api.SequenceTypeInfo]*seqInfoRec
	mapInfos  map[api.MapTypeInfo]*mapInfoRec

	envs     map[api.Env]*envRec
	options  map[api.SessionOptions]*optionsRec
	runOpts  map[api.RunOptions]*runOptionsRec
	sessions map[api.Session]*sessionRec
	metas    map[api.ModelMetadata]*metaRec

	allocated map[uintptr][]byte  // live allocator buffers
	arrays    map[uintptr][]*byte // live allocator pointer arrays
	keep      [][]byte            // engine-owned strings, never freed
	freed     int

	cpuInfo api.MemoryInfo // shared unowned placement for host tensors

	lastEnv     api.Env
	lastSession api.Session
	lastRun     *RunRecord

	providerArrays int // outstanding GetAvailableProviders results

	// Model is served by every session the store creates.
	Model ModelSpec
	// ModelPath, when set, is the only path CreateSession accepts.
	ModelPath string
	// Providers is the available provider list.
	Providers []string
	// Run computes session outputs; nil uses zero-filled defaults.
	Run RunHook
}

// New creates an empty store with a CPU-only provider list.
func New() *Store {
	s := &Store{
		next:      0x1000,
		values:    make(map[api.Value]*valueRec),
		infos:     make(map[api.MemoryInfo]*infoRec),
		shapes:    make(map[api.TensorTypeAndShapeInfo]*shapeRec),
		typeInfos: make(map[api.TypeInfo]*typeInfoRec),
		seqInfos:  make(map[api.SequenceTypeInfo]*seqInfoRec),
		mapInfos:  make(map[api.MapTypeInfo]*mapInfoRec),
		envs:      make(map[api.Env]*envRec),
		options:   make(map[api.SessionOptions]*optionsRec),
		runOpts:   make(map[api.RunOptions]*runOptionsRec),
		sessions:  make(map[api.Session]*sessionRec),
		metas:     make(map[api.ModelMetadata]*metaRec),
		allocated: make(map[uintptr][]byte),
		arrays:    make(map[uintptr][]*byte),
		Providers: []string{"CPUExecutionProvider"},
	}
	s.cpuInfo = api.MemoryInfo(s.handle())
	s.infos[s.cpuInfo] = &infoRec{name: "Cpu", dev: api.DeviceCPU, mem: api.MemTypeDefault}
	return s
}

// handle issues the next even handle. Callers hold s.mu.
func (s *Store) handle() uintptr {
	s.next += 2
	return s.next
}

func fail(code api.ErrorCode, format string, args ...any) api.Status {
	return errors.Seal(errors.Newf(code, format, args...))
}

// allocCString copies str into a NUL-terminated allocator buffer the caller
// must free. Callers hold s.mu.
func (s *Store) allocCString(str string) *byte {
	buf := append([]byte(str), 0)
	s.allocated[uintptr(unsafe.Pointer(&buf[0]))] = buf
	return &buf[0]
}

// staticCString copies str into a buffer the store owns forever, for
// entries that hand out engine-owned strings. Callers hold s.mu.
func (s *Store) staticCString(str string) *byte {
	buf := append([]byte(str), 0)
	s.keep = append(s.keep, buf)
	return &buf[0]
}

// Status entries. The store deals in sealed statuses, so decoding only has
// to handle handles produced by Seal.

func (s *Store) getErrorCode(st api.Status) api.ErrorCode {
	if err, ok := errors.Borrow(st); ok {
		var e *errors.Error
		if goerrors.As(err, &e) {
			return e.Code
		}
	}
	return api.ErrorFail
}

func (s *Store) getErrorMessage(st api.Status) unsafe.Pointer {
	msg := "unknown status"
	if err, ok := errors.Borrow(st); ok {
		msg = err.Error()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return unsafe.Pointer(s.staticCString(msg))
}

func (s *Store) releaseStatus(st api.Status) {
	errors.Reclaim(st)
}

func (s *Store) createStatus(code api.ErrorCode, msg *byte) api.Status {
	return errors.Seal(errors.New(code, api.GoStringPtr(msg)))
}

// Memory info entries.

func (s *Store) createCpuMemoryInfo(alloc api.AllocatorType, mem api.MemType, out *api.MemoryInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := api.MemoryInfo(s.handle())
	s.infos[h] = &infoRec{name: "Cpu", alloc: alloc, mem: mem, dev: api.DeviceCPU, owned: true}
	*out = h
	return 0
}

func (s *Store) releaseMemoryInfo(h api.MemoryInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.infos[h]; ok {
		rec.releases++
	}
}

func (s *Store) memoryInfoGetName(h api.MemoryInfo, out **byte) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.infos[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown memory info %#x", h)
	}
	*out = s.staticCString(rec.name)
	return 0
}

func (s *Store) memoryInfoGetMemType(h api.MemoryInfo, out *api.MemType) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.infos[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown memory info %#x", h)
	}
	*out = rec.mem
	return 0
}

func (s *Store) memoryInfoGetDeviceType(h api.MemoryInfo, out *api.DeviceType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.infos[h]; ok {
		*out = rec.dev
	}
}

func (s *Store) getTensorMemoryInfo(v api.Value, out *api.MemoryInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	if rec.info != 0 {
		*out = rec.info
	} else {
		*out = s.cpuInfo
	}
	return 0
}

// Allocator entries.

func (s *Store) getAllocatorWithDefaultOptions(out *api.Allocator) api.Status {
	*out = api.Allocator(0x2)
	return 0
}

func (s *Store) allocatorFree(_ api.Allocator, p unsafe.Pointer) api.Status {
	if p == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uintptr(p)
	if _, ok := s.allocated[key]; ok {
		delete(s.allocated, key)
		s.freed++
		return 0
	}
	if _, ok := s.arrays[key]; ok {
		delete(s.arrays, key)
		s.freed++
		return 0
	}
	return fail(api.ErrorInvalidArgument, "free of unallocated pointer %#x", key)
}

// Assertion accessors.

// ValueReleases returns how many times a value handle was released.
func (s *Store) ValueReleases(v api.Value) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.values[v]; ok {
		return rec.releases
	}
	return 0
}

// LiveValues counts value handles that were never released.
func (s *Store) LiveValues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.values {
		if rec.releases == 0 {
			n++
		}
	}
	return n
}

// InfoReleases returns how many times a memory info handle was released.
func (s *Store) InfoReleases(h api.MemoryInfo) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.infos[h]; ok {
		return rec.releases
	}
	return 0
}

// SharedInfoReleases returns releases of the engine-owned CPU info, which
// correct code never frees.
func (s *Store) SharedInfoReleases() int {
	return s.InfoReleases(s.cpuInfo)
}

// OutstandingAllocations counts allocator buffers that were handed out and
// not freed.
func (s *Store) OutstandingAllocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allocated) + len(s.arrays)
}

// Freed returns how many allocator buffers were freed.
func (s *Store) Freed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freed
}

// UnownedShapeReleases counts releases of shape infos that were handed out
// as views, which correct code never frees.
func (s *Store) UnownedShapeReleases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.shapes {
		if !rec.owned {
			n += rec.releases
		}
	}
	return n
}

// TypeInfoLeaks counts owned type infos that were never released.
func (s *Store) TypeInfoLeaks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.typeInfos {
		if rec.releases == 0 {
			n++
		}
	}
	return n
}

// ProviderArrayLeaks counts available-provider arrays never given back.
func (s *Store) ProviderArrayLeaks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.providerArrays
}
