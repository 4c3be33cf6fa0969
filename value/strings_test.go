package value

import (
	"testing"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/tensor"
)

func TestStringTensorRoundTrip(t *testing.T) {
	testStore()

	tests := []struct {
		name  string
		in    []string
		shape tensor.Shape
	}{
		{name: "mixed lengths", in: []string{"alpha", "", "gamma", "d"}, shape: tensor.NewShape(2, 2)},
		{name: "all empty", in: []string{"", ""}, shape: tensor.NewShape(2)},
		{name: "single scalar", in: []string{"only"}, shape: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStringTensor(tt.in, tt.shape)
			if err != nil {
				t.Fatalf("NewStringTensor: %v", err)
			}
			defer st.Close()

			if et := st.ElementType(); et != api.ElemString {
				t.Errorf("ElementType = %v", et)
			}
			out, err := st.Strings()
			if err != nil {
				t.Fatalf("Strings: %v", err)
			}
			if len(out) != len(tt.in) {
				t.Fatalf("got %d strings, want %d", len(out), len(tt.in))
			}
			for i := range tt.in {
				if out[i] != tt.in[i] {
					t.Errorf("string %d = %q, want %q", i, out[i], tt.in[i])
				}
			}
		})
	}
}

func TestStringTensorNoRawAccess(t *testing.T) {
	testStore()

	st, err := NewStringTensor([]string{"a"}, tensor.NewShape(1))
	if err != nil {
		t.Fatalf("NewStringTensor: %v", err)
	}
	defer st.Close()

	if _, err := st.RawData(); err == nil {
		t.Error("string tensor exposed raw bytes")
	}
}

func TestNewStringTensorRejects(t *testing.T) {
	testStore()

	if _, err := NewStringTensor([]string{"ok", "bad\x00bad"}, tensor.NewShape(2)); err == nil {
		t.Fatal("interior NUL accepted")
	}
	if _, err := NewStringTensor([]string{"a"}, tensor.NewShape(2)); err == nil {
		t.Fatal("count mismatch accepted")
	}
	if _, err := NewStringTensor(nil, tensor.NewShape(0)); err == nil {
		t.Fatal("zero dimension accepted")
	}
}

func TestStringsOnNumericTensor(t *testing.T) {
	testStore()

	tr, err := NewTensor([]float32{1}, nil)
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}
	defer tr.Close()

	dt, err := AsDynTensor(tr.Upcast())
	if err != nil {
		t.Fatalf("AsDynTensor: %v", err)
	}
	if _, err := dt.Strings(); err == nil {
		t.Error("numeric tensor decoded as strings")
	}
}
