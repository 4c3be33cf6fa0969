package value

import (
	"testing"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/internal/enginetest"
	"github.com/wippyai/ort/tensor"
)

func TestValueTypeOfTensor(t *testing.T) {
	s := testStore()

	tr, err := NewTensor([]float32{1, 2, 3, 4, 5, 6}, tensor.NewShape(2, 3))
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}
	defer tr.Close()

	vt, err := tr.Upcast().ValueType()
	if err != nil {
		t.Fatalf("ValueType: %v", err)
	}
	if vt.Kind != api.TypeTensor {
		t.Errorf("Kind = %v", vt.Kind)
	}
	if vt.Elem != api.ElemFloat32 {
		t.Errorf("Elem = %v", vt.Elem)
	}
	if !vt.Dims.Equal(tensor.NewShape(2, 3)) {
		t.Errorf("Dims = %v", vt.Dims)
	}
	if got := vt.String(); got != "float32[2x3]" {
		t.Errorf("String = %q", got)
	}
	if n := s.TypeInfoLeaks(); n != 0 {
		t.Errorf("%d type infos leaked", n)
	}
}

func TestTypeFromTypeInfo(t *testing.T) {
	s := testStore()

	tests := []struct {
		name string
		ti   api.TypeInfo
		want string
	}{
		{
			name: "static tensor",
			ti:   s.MakeTensorTypeInfo(enginetest.TensorSpec{Elem: api.ElemUint8, Dims: []int64{4, 4}}),
			want: "uint8[4x4]",
		},
		{
			name: "named dynamic dimension",
			ti: s.MakeTensorTypeInfo(enginetest.TensorSpec{
				Elem:     api.ElemFloat32,
				Dims:     []int64{-1, 3, 224, 224},
				Symbolic: []string{"batch", "", "", ""},
			}),
			want: "float32[batchx3x224x224]",
		},
		{
			name: "unnamed dynamic dimension",
			ti: s.MakeTensorTypeInfo(enginetest.TensorSpec{
				Elem:     api.ElemInt64,
				Dims:     []int64{-1},
				Symbolic: []string{""},
			}),
			want: "int64[?]",
		},
		{
			name: "sequence of tensors",
			ti:   s.MakeSequenceTypeInfo(enginetest.TensorSpec{Elem: api.ElemFloat32, Dims: []int64{3}}),
			want: "seq(float32[3])",
		},
		{
			name: "map of scalars",
			ti:   s.MakeMapTypeInfo(api.ElemInt64, enginetest.TensorSpec{Elem: api.ElemFloat32}),
			want: "map(int64, float32[scalar])",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt, err := TypeFromTypeInfo(tt.ti)
			engine.Table().ReleaseTypeInfo(tt.ti)
			if err != nil {
				t.Fatalf("TypeFromTypeInfo: %v", err)
			}
			if got := vt.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
	if n := s.TypeInfoLeaks(); n != 0 {
		t.Errorf("%d type infos leaked", n)
	}
}

func TestTypeFromTypeInfoStructure(t *testing.T) {
	s := testStore()

	ti := s.MakeMapTypeInfo(api.ElemString, enginetest.TensorSpec{Elem: api.ElemFloat64, Dims: []int64{2}})
	vt, err := TypeFromTypeInfo(ti)
	engine.Table().ReleaseTypeInfo(ti)
	if err != nil {
		t.Fatalf("TypeFromTypeInfo: %v", err)
	}
	if vt.Kind != api.TypeMap {
		t.Fatalf("Kind = %v", vt.Kind)
	}
	if vt.Key != api.ElemString {
		t.Errorf("Key = %v", vt.Key)
	}
	if vt.Value == nil || vt.Value.Kind != api.TypeTensor {
		t.Fatalf("Value = %+v", vt.Value)
	}
	if vt.Value.Elem != api.ElemFloat64 {
		t.Errorf("value Elem = %v", vt.Value.Elem)
	}
	if !vt.Value.Dims.Equal(tensor.NewShape(2)) {
		t.Errorf("value Dims = %v", vt.Value.Dims)
	}

	ti = s.MakeSequenceTypeInfo(enginetest.TensorSpec{Elem: api.ElemInt32, Dims: []int64{5}})
	vt, err = TypeFromTypeInfo(ti)
	engine.Table().ReleaseTypeInfo(ti)
	if err != nil {
		t.Fatalf("TypeFromTypeInfo: %v", err)
	}
	if vt.Kind != api.TypeSequence {
		t.Fatalf("Kind = %v", vt.Kind)
	}
	if vt.Element == nil || vt.Element.Kind != api.TypeTensor || vt.Element.Elem != api.ElemInt32 {
		t.Errorf("Element = %+v", vt.Element)
	}

	if n := s.TypeInfoLeaks(); n != 0 {
		t.Errorf("%d type infos leaked", n)
	}
}
