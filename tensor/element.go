// Package tensor provides element typing, shape arithmetic, and strided
// views over flat buffers. Nothing here touches the engine; the value
// package builds engine tensors out of these parts.
package tensor

import "github.com/wippyai/ort/api"

// Element is the set of Go types that can back a typed tensor directly.
// Half-precision floats have no Go representation; tensors of those types
// are built from raw bytes instead.
type Element interface {
	float32 | float64 | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 | bool
}

// ElementTypeOf returns the wire-level element type for T.
func ElementTypeOf[T Element]() api.ElementDataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return api.ElemFloat32
	case float64:
		return api.ElemFloat64
	case int8:
		return api.ElemInt8
	case int16:
		return api.ElemInt16
	case int32:
		return api.ElemInt32
	case int64:
		return api.ElemInt64
	case uint8:
		return api.ElemUint8
	case uint16:
		return api.ElemUint16
	case uint32:
		return api.ElemUint32
	case uint64:
		return api.ElemUint64
	case bool:
		return api.ElemBool
	}
	return api.ElemUndefined
}

// SizeOf returns the byte width of one element, or 0 for types without a
// fixed width such as strings.
func SizeOf(t api.ElementDataType) int {
	switch t {
	case api.ElemInt8, api.ElemUint8, api.ElemBool, api.ElemFloat8E4M3FN:
		return 1
	case api.ElemInt16, api.ElemUint16, api.ElemFloat16, api.ElemBFloat16:
		return 2
	case api.ElemInt32, api.ElemUint32, api.ElemFloat32:
		return 4
	case api.ElemInt64, api.ElemUint64, api.ElemFloat64, api.ElemComplex64:
		return 8
	case api.ElemComplex128:
		return 16
	}
	return 0
}
