package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/tensor"
)

// ValueType describes the static type of a value. Kind selects which detail
// fields are meaningful: tensors carry Elem, Dims, and Symbolic; sequences
// carry Element; maps carry Key and Value.
type ValueType struct {
	Kind api.ONNXType

	Elem     api.ElementDataType
	Dims     tensor.Shape
	Symbolic []string

	Element *ValueType

	Key   api.ElementDataType
	Value *ValueType
}

// TypeFromTypeInfo reads a full type descriptor out of a TypeInfo handle.
// The caller keeps ownership of ti; owned handles obtained while recursing
// into sequences and maps are released here.
func TypeFromTypeInfo(ti api.TypeInfo) (*ValueType, error) {
	t := engine.Table()

	var kind api.ONNXType
	if err := errors.FromStatus(t.GetOnnxTypeFromTypeInfo(ti, &kind)); err != nil {
		return nil, err
	}

	switch kind {
	case api.TypeTensor, api.TypeSparseTensor:
		var si api.TensorTypeAndShapeInfo
		if err := errors.FromStatus(t.CastTypeInfoToTensorInfo(ti, &si)); err != nil {
			return nil, err
		}
		if si == 0 {
			return &ValueType{Kind: kind}, nil
		}
		// The cast result is a view into ti, not a new handle.
		elem, dims, symbolic, err := shapeInfoDetail(si)
		if err != nil {
			return nil, err
		}
		return &ValueType{Kind: kind, Elem: elem, Dims: dims, Symbolic: symbolic}, nil

	case api.TypeSequence:
		var sq api.SequenceTypeInfo
		if err := errors.FromStatus(t.CastTypeInfoToSequenceTypeInfo(ti, &sq)); err != nil {
			return nil, err
		}
		if sq == 0 {
			return &ValueType{Kind: kind}, nil
		}
		var elemTI api.TypeInfo
		if err := errors.FromStatus(t.GetSequenceElementType(sq, &elemTI)); err != nil {
			return nil, err
		}
		defer t.ReleaseTypeInfo(elemTI)
		element, err := TypeFromTypeInfo(elemTI)
		if err != nil {
			return nil, err
		}
		return &ValueType{Kind: kind, Element: element}, nil

	case api.TypeMap:
		var mp api.MapTypeInfo
		if err := errors.FromStatus(t.CastTypeInfoToMapTypeInfo(ti, &mp)); err != nil {
			return nil, err
		}
		if mp == 0 {
			return &ValueType{Kind: kind}, nil
		}
		var key api.ElementDataType
		if err := errors.FromStatus(t.GetMapKeyType(mp, &key)); err != nil {
			return nil, err
		}
		var valTI api.TypeInfo
		if err := errors.FromStatus(t.GetMapValueType(mp, &valTI)); err != nil {
			return nil, err
		}
		defer t.ReleaseTypeInfo(valTI)
		val, err := TypeFromTypeInfo(valTI)
		if err != nil {
			return nil, err
		}
		return &ValueType{Kind: kind, Key: key, Value: val}, nil
	}

	return &ValueType{Kind: kind}, nil
}

// shapeInfoDetail reads element type, dimensions, and symbolic dimension
// names from a shape info handle without releasing it.
func shapeInfoDetail(si api.TensorTypeAndShapeInfo) (api.ElementDataType, tensor.Shape, []string, error) {
	t := engine.Table()

	var elem api.ElementDataType
	if err := errors.FromStatus(t.GetTensorElementType(si, &elem)); err != nil {
		return 0, nil, nil, err
	}

	var rank uintptr
	if err := errors.FromStatus(t.GetDimensionsCount(si, &rank)); err != nil {
		return 0, nil, nil, err
	}

	dims := make(tensor.Shape, rank)
	symbolic := make([]string, rank)
	if rank > 0 {
		if err := errors.FromStatus(t.GetDimensions(si, &dims[0], rank)); err != nil {
			return 0, nil, nil, err
		}
		names := make([]*byte, rank)
		if err := errors.FromStatus(t.GetSymbolicDimensions(si, &names[0], rank)); err != nil {
			return 0, nil, nil, err
		}
		for i, p := range names {
			symbolic[i] = api.GoStringPtr(p)
		}
	}
	return elem, dims, symbolic, nil
}

// String renders the type compactly: "float32[1x3x224x224]" for tensors
// with dynamic dimensions shown by name, "seq(...)" for sequences, and
// "map(key, ...)" for maps.
func (vt *ValueType) String() string {
	if vt == nil {
		return "?"
	}
	switch vt.Kind {
	case api.TypeTensor, api.TypeSparseTensor:
		var b strings.Builder
		b.WriteString(elemName(vt.Elem))
		b.WriteByte('[')
		if len(vt.Dims) == 0 {
			b.WriteString("scalar")
		}
		for i, d := range vt.Dims {
			if i > 0 {
				b.WriteByte('x')
			}
			switch {
			case d >= 0:
				b.WriteString(strconv.FormatInt(d, 10))
			case i < len(vt.Symbolic) && vt.Symbolic[i] != "":
				b.WriteString(vt.Symbolic[i])
			default:
				b.WriteByte('?')
			}
		}
		b.WriteByte(']')
		return b.String()
	case api.TypeSequence:
		return fmt.Sprintf("seq(%s)", vt.Element)
	case api.TypeMap:
		return fmt.Sprintf("map(%s, %s)", elemName(vt.Key), vt.Value)
	case api.TypeOptional:
		return "optional"
	}
	return "unknown"
}

func elemName(e api.ElementDataType) string {
	switch e {
	case api.ElemFloat32:
		return "float32"
	case api.ElemFloat64:
		return "float64"
	case api.ElemFloat16:
		return "float16"
	case api.ElemBFloat16:
		return "bfloat16"
	case api.ElemInt8:
		return "int8"
	case api.ElemInt16:
		return "int16"
	case api.ElemInt32:
		return "int32"
	case api.ElemInt64:
		return "int64"
	case api.ElemUint8:
		return "uint8"
	case api.ElemUint16:
		return "uint16"
	case api.ElemUint32:
		return "uint32"
	case api.ElemUint64:
		return "uint64"
	case api.ElemBool:
		return "bool"
	case api.ElemString:
		return "string"
	case api.ElemComplex64:
		return "complex64"
	case api.ElemComplex128:
		return "complex128"
	case api.ElemFloat8E4M3FN:
		return "float8e4m3fn"
	}
	return "undefined"
}
