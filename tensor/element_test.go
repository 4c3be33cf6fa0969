package tensor

import (
	"testing"

	"github.com/wippyai/ort/api"
)

func TestElementTypeOf(t *testing.T) {
	if got := ElementTypeOf[float32](); got != api.ElemFloat32 {
		t.Errorf("float32 = %v", got)
	}
	if got := ElementTypeOf[int64](); got != api.ElemInt64 {
		t.Errorf("int64 = %v", got)
	}
	if got := ElementTypeOf[uint8](); got != api.ElemUint8 {
		t.Errorf("uint8 = %v", got)
	}
	if got := ElementTypeOf[bool](); got != api.ElemBool {
		t.Errorf("bool = %v", got)
	}
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		elem api.ElementDataType
		size int
	}{
		{api.ElemFloat32, 4},
		{api.ElemFloat64, 8},
		{api.ElemFloat16, 2},
		{api.ElemBFloat16, 2},
		{api.ElemInt8, 1},
		{api.ElemUint64, 8},
		{api.ElemBool, 1},
		{api.ElemComplex128, 16},
		{api.ElemString, 0},
		{api.ElemUndefined, 0},
	}

	for _, tt := range tests {
		if got := SizeOf(tt.elem); got != tt.size {
			t.Errorf("SizeOf(%v) = %d, want %d", tt.elem, got, tt.size)
		}
	}
}
