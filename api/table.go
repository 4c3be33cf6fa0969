package api

import "unsafe"

// Table is the bound subset of the engine's C API, one Go function per entry
// point. The engine package fills it from the shared library; alternative
// backends and tests fill it with Go implementations.
//
// Conventions follow the C API directly: out-parameters are pointers, string
// arguments are NUL-terminated byte buffers, and unless noted every function
// returns a Status that is 0 on success and otherwise owned by the caller.
type Table struct {
	// Status and error handling
	CreateStatus    func(ErrorCode, *byte) Status
	GetErrorCode    func(Status) ErrorCode
	GetErrorMessage func(Status) unsafe.Pointer
	ReleaseStatus   func(Status)

	// Environment
	CreateEnv                   func(LoggingLevel, *byte, *Env) Status
	ReleaseEnv                  func(Env)
	EnableTelemetryEvents       func(Env) Status
	DisableTelemetryEvents      func(Env) Status
	UpdateEnvWithCustomLogLevel func(Env, LoggingLevel) Status

	// Allocator
	GetAllocatorWithDefaultOptions func(*Allocator) Status
	AllocatorFree                  func(Allocator, unsafe.Pointer) Status

	// Memory info
	CreateCpuMemoryInfo     func(AllocatorType, MemType, *MemoryInfo) Status
	ReleaseMemoryInfo       func(MemoryInfo)
	MemoryInfoGetName       func(MemoryInfo, **byte) Status
	MemoryInfoGetMemType    func(MemoryInfo, *MemType) Status
	MemoryInfoGetDeviceType func(MemoryInfo, *DeviceType)
	GetTensorMemoryInfo     func(Value, *MemoryInfo) Status

	// Session options
	CreateSessionOptions                  func(*SessionOptions) Status
	ReleaseSessionOptions                 func(SessionOptions)
	SetIntraOpNumThreads                  func(SessionOptions, int32) Status
	SetInterOpNumThreads                  func(SessionOptions, int32) Status
	SetSessionExecutionMode               func(SessionOptions, int32) Status
	SetSessionGraphOptimizationLevel      func(SessionOptions, int32) Status
	EnableMemPattern                      func(SessionOptions) Status
	DisableMemPattern                     func(SessionOptions) Status
	EnableCpuMemArena                     func(SessionOptions) Status
	DisableCpuMemArena                    func(SessionOptions) Status
	SetSessionLogSeverityLevel            func(SessionOptions, int32) Status
	EnableProfiling                       func(SessionOptions, *byte) Status
	DisableProfiling                      func(SessionOptions) Status
	AddSessionConfigEntry                 func(SessionOptions, *byte, *byte) Status
	AddFreeDimensionOverrideByName        func(SessionOptions, *byte, int64) Status
	SetDeterministicCompute               func(SessionOptions, int32) Status
	SessionOptionsAppendExecutionProvider func(SessionOptions, *byte, **byte, **byte, uintptr) Status

	// Run options
	CreateRunOptions    func(*RunOptions) Status
	ReleaseRunOptions   func(RunOptions)
	RunOptionsSetRunTag func(RunOptions, *byte) Status
	AddRunConfigEntry   func(RunOptions, *byte, *byte) Status

	// Session
	CreateSession                  func(Env, *byte, SessionOptions, *Session) Status
	CreateSessionFromArray         func(Env, unsafe.Pointer, uintptr, SessionOptions, *Session) Status
	SessionGetInputCount           func(Session, *uintptr) Status
	SessionGetOutputCount          func(Session, *uintptr) Status
	SessionGetInputName            func(Session, uintptr, Allocator, **byte) Status
	SessionGetOutputName           func(Session, uintptr, Allocator, **byte) Status
	SessionGetInputTypeInfo        func(Session, uintptr, *TypeInfo) Status
	SessionGetOutputTypeInfo       func(Session, uintptr, *TypeInfo) Status
	Run                            func(Session, RunOptions, **byte, *Value, uintptr, **byte, uintptr, *Value) Status
	ReleaseSession                 func(Session)
	SessionEndProfiling            func(Session, Allocator, **byte) Status
	SessionGetProfilingStartTimeNs func(Session, *uint64) Status

	// Model metadata
	SessionGetModelMetadata               func(Session, *ModelMetadata) Status
	ModelMetadataGetProducerName          func(ModelMetadata, Allocator, **byte) Status
	ModelMetadataGetGraphName             func(ModelMetadata, Allocator, **byte) Status
	ModelMetadataGetDomain                func(ModelMetadata, Allocator, **byte) Status
	ModelMetadataGetDescription           func(ModelMetadata, Allocator, **byte) Status
	ModelMetadataGetGraphDescription      func(ModelMetadata, Allocator, **byte) Status
	ModelMetadataLookupCustomMetadataMap  func(ModelMetadata, Allocator, *byte, **byte) Status
	ModelMetadataGetVersion               func(ModelMetadata, *int64) Status
	ModelMetadataGetCustomMetadataMapKeys func(ModelMetadata, Allocator, ***byte, *int64) Status
	ReleaseModelMetadata                  func(ModelMetadata)

	// Type introspection
	GetTypeInfo                    func(Value, *TypeInfo) Status
	GetOnnxTypeFromTypeInfo        func(TypeInfo, *ONNXType) Status
	CastTypeInfoToTensorInfo       func(TypeInfo, *TensorTypeAndShapeInfo) Status
	CastTypeInfoToSequenceTypeInfo func(TypeInfo, *SequenceTypeInfo) Status
	CastTypeInfoToMapTypeInfo      func(TypeInfo, *MapTypeInfo) Status
	GetSequenceElementType         func(SequenceTypeInfo, *TypeInfo) Status
	GetMapKeyType                  func(MapTypeInfo, *ElementDataType) Status
	GetMapValueType                func(MapTypeInfo, *TypeInfo) Status
	ReleaseTypeInfo                func(TypeInfo)
	ReleaseMapTypeInfo             func(MapTypeInfo)
	ReleaseSequenceTypeInfo        func(SequenceTypeInfo)

	// Tensor and value operations
	CreateTensorAsOrtValue         func(Allocator, *int64, uintptr, ElementDataType, *Value) Status
	CreateTensorWithDataAsOrtValue func(MemoryInfo, unsafe.Pointer, uintptr, *int64, uintptr, ElementDataType, *Value) Status
	IsTensor                       func(Value, *int32) Status
	GetValueType                   func(Value, *ONNXType) Status
	GetTensorMutableData           func(Value, *unsafe.Pointer) Status
	GetTensorTypeAndShape          func(Value, *TensorTypeAndShapeInfo) Status
	GetTensorElementType           func(TensorTypeAndShapeInfo, *ElementDataType) Status
	GetDimensionsCount             func(TensorTypeAndShapeInfo, *uintptr) Status
	GetDimensions                  func(TensorTypeAndShapeInfo, *int64, uintptr) Status
	GetSymbolicDimensions          func(TensorTypeAndShapeInfo, **byte, uintptr) Status
	GetTensorShapeElementCount     func(TensorTypeAndShapeInfo, *uintptr) Status
	TensorAt                       func(Value, *int64, uintptr, *unsafe.Pointer) Status
	ReleaseValue                   func(Value)
	ReleaseTensorTypeAndShapeInfo  func(TensorTypeAndShapeInfo)

	// String tensors
	FillStringTensor          func(Value, **byte, uintptr) Status
	GetStringTensorDataLength func(Value, *uintptr) Status
	GetStringTensorContent    func(Value, unsafe.Pointer, uintptr, *uintptr, uintptr) Status

	// Execution providers
	GetAvailableProviders     func(***byte, *int32) Status
	ReleaseAvailableProviders func(**byte, int32) Status

	// Build info
	GetBuildInfoString func() unsafe.Pointer
}
