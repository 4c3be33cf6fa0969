package value

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/memory"
	"github.com/wippyai/ort/tensor"
)

// NewStringTensor creates an engine-allocated string tensor and fills it
// from strs. String contents are copied into engine-managed memory, so the
// input slice is free afterwards. Strings with interior NUL bytes are
// rejected because the wire format is NUL-terminated.
func NewStringTensor(strs []string, shape tensor.Shape) (*DynTensor, error) {
	if err := checkDims(shape); err != nil {
		return nil, err
	}
	if want := shape.Elements(); int64(len(strs)) != want {
		return nil, errors.InvalidArgument("shape %s needs %d strings, %d provided", shape, want, len(strs))
	}
	for i, s := range strs {
		if strings.IndexByte(s, 0) >= 0 {
			return nil, errors.InvalidArgument("string %d contains an interior NUL byte", i)
		}
	}

	alloc, err := memory.Default()
	if err != nil {
		return nil, err
	}
	var h api.Value
	st := engine.Table().CreateTensorAsOrtValue(alloc.Handle(), dimsPtr(shape), uintptr(len(shape)), api.ElemString, &h)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	t := &DynTensor{val: *newValue(h, true, nil), elem: api.ElemString}

	ptrs := api.CStrings(strs)
	if err := errors.FromStatus(engine.Table().FillStringTensor(h, &ptrs[0], uintptr(len(ptrs)))); err != nil {
		t.Close()
		return nil, err
	}
	runtime.KeepAlive(ptrs)
	runtime.KeepAlive(shape)
	return t, nil
}

// Strings copies the contents of a string tensor out of the engine in
// row-major order.
func (t *DynTensor) Strings() ([]string, error) {
	if t.elem != api.ElemString {
		return nil, errors.InvalidArgument("tensor holds %s, not strings", elemName(t.elem))
	}
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	shape, err := shapeOf(h)
	if err != nil {
		return nil, err
	}
	n := shape.Elements()
	if n == 0 {
		return nil, nil
	}

	var total uintptr
	if err := errors.FromStatus(engine.Table().GetStringTensorDataLength(h, &total)); err != nil {
		return nil, err
	}
	buf := make([]byte, total)
	offsets := make([]uintptr, n)
	var bufPtr unsafe.Pointer
	if total > 0 {
		bufPtr = unsafe.Pointer(&buf[0])
	}
	st := engine.Table().GetStringTensorContent(h, bufPtr, total, &offsets[0], uintptr(n))
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	runtime.KeepAlive(buf)

	out := make([]string, n)
	for i := range out {
		start := offsets[i]
		end := total
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		out[i] = string(buf[start:end])
	}
	return out, nil
}
