package api

// Status is an opaque pointer to an engine status object. The zero value
// means success; any other value carries an error code and message and must
// be released exactly once.
type Status uintptr

// Env is an opaque pointer to an engine environment.
type Env uintptr

// Session is an opaque pointer to an inference session.
type Session uintptr

// SessionOptions is an opaque pointer to session configuration.
type SessionOptions uintptr

// RunOptions is an opaque pointer to per-run configuration.
type RunOptions uintptr

// Value is an opaque pointer to an engine value, typically a tensor.
type Value uintptr

// MemoryInfo is an opaque pointer to allocation device metadata.
type MemoryInfo uintptr

// Allocator is an opaque pointer to an engine memory allocator.
type Allocator uintptr

// TypeInfo is an opaque pointer to value type information.
type TypeInfo uintptr

// TensorTypeAndShapeInfo is an opaque pointer to tensor element type and
// shape information.
type TensorTypeAndShapeInfo uintptr

// MapTypeInfo is an opaque pointer to map type information.
type MapTypeInfo uintptr

// SequenceTypeInfo is an opaque pointer to sequence type information.
type SequenceTypeInfo uintptr

// ModelMetadata is an opaque pointer to model metadata.
type ModelMetadata uintptr

// ErrorCode classifies a non-success Status.
type ErrorCode int32

const (
	ErrorOK               ErrorCode = 0
	ErrorFail             ErrorCode = 1
	ErrorInvalidArgument  ErrorCode = 2
	ErrorNoSuchFile       ErrorCode = 3
	ErrorNoModel          ErrorCode = 4
	ErrorEngineError      ErrorCode = 5
	ErrorRuntimeException ErrorCode = 6
	ErrorInvalidProtobuf  ErrorCode = 7
	ErrorModelLoaded      ErrorCode = 8
	ErrorNotImplemented   ErrorCode = 9
	ErrorInvalidGraph     ErrorCode = 10
	ErrorEPFail           ErrorCode = 11
)

// String returns the snake_case name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorOK:
		return "ok"
	case ErrorFail:
		return "fail"
	case ErrorInvalidArgument:
		return "invalid_argument"
	case ErrorNoSuchFile:
		return "no_such_file"
	case ErrorNoModel:
		return "no_model"
	case ErrorEngineError:
		return "engine_error"
	case ErrorRuntimeException:
		return "runtime_exception"
	case ErrorInvalidProtobuf:
		return "invalid_protobuf"
	case ErrorModelLoaded:
		return "model_loaded"
	case ErrorNotImplemented:
		return "not_implemented"
	case ErrorInvalidGraph:
		return "invalid_graph"
	case ErrorEPFail:
		return "ep_fail"
	}
	return "unknown"
}

// LoggingLevel is the engine's log severity scale.
type LoggingLevel int32

const (
	LogVerbose LoggingLevel = 0
	LogInfo    LoggingLevel = 1
	LogWarning LoggingLevel = 2
	LogError   LoggingLevel = 3
	LogFatal   LoggingLevel = 4
)

// ONNXType is the kind of an engine value.
type ONNXType int32

const (
	TypeUnknown      ONNXType = 0
	TypeTensor       ONNXType = 1
	TypeSequence     ONNXType = 2
	TypeMap          ONNXType = 3
	TypeOpaque       ONNXType = 4
	TypeSparseTensor ONNXType = 5
	TypeOptional     ONNXType = 6
)

// ElementDataType is the wire-level tensor element type.
type ElementDataType int32

const (
	ElemUndefined    ElementDataType = 0
	ElemFloat32      ElementDataType = 1
	ElemUint8        ElementDataType = 2
	ElemInt8         ElementDataType = 3
	ElemUint16       ElementDataType = 4
	ElemInt16        ElementDataType = 5
	ElemInt32        ElementDataType = 6
	ElemInt64        ElementDataType = 7
	ElemString       ElementDataType = 8
	ElemBool         ElementDataType = 9
	ElemFloat16      ElementDataType = 10
	ElemFloat64      ElementDataType = 11
	ElemUint32       ElementDataType = 12
	ElemUint64       ElementDataType = 13
	ElemComplex64    ElementDataType = 14
	ElemComplex128   ElementDataType = 15
	ElemBFloat16     ElementDataType = 16
	ElemFloat8E4M3FN ElementDataType = 17
)

// AllocatorType selects between device and arena allocation.
type AllocatorType int32

const (
	AllocatorInvalid AllocatorType = -1
	AllocatorDevice  AllocatorType = 0
	AllocatorArena   AllocatorType = 1
)

// MemType describes where an allocation lives relative to the device.
type MemType int32

const (
	MemTypeCPUInput  MemType = -2
	MemTypeCPUOutput MemType = -1
	MemTypeCPU       MemType = MemTypeCPUOutput
	MemTypeDefault   MemType = 0
)

// DeviceType is the coarse device class reported for a MemoryInfo.
type DeviceType int32

const (
	DeviceCPU  DeviceType = 0
	DeviceGPU  DeviceType = 1
	DeviceFPGA DeviceType = 2
)
