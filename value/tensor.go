package value

import (
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/memory"
	"github.com/wippyai/ort/tensor"
)

// Tensor is a typed tensor owner. The zero value is not usable; build one
// with a constructor or AsTensor.
type Tensor[T tensor.Element] struct {
	val Value
}

// DynTensor is a tensor owner whose element type is only known at runtime,
// for element types without a Go representation and for inspecting outputs
// generically.
type DynTensor struct {
	val  Value
	elem api.ElementDataType
}

// checkDims validates a host-data construction shape. Unlike shapes read
// back from the engine, requested dimensions may not be zero or dynamic.
func checkDims(shape tensor.Shape) error {
	for i, d := range shape {
		if d < 1 {
			return errors.InvalidArgument("dimension %d is %d; dimensions must be at least 1 when building a tensor from host data", i, d)
		}
	}
	return shape.Validate()
}

func checkLen[T tensor.Element](data []T, shape tensor.Shape) error {
	if err := checkDims(shape); err != nil {
		return err
	}
	if want := shape.Elements(); int64(len(data)) != want {
		return errors.InvalidArgument("shape %s needs %d elements, %d provided", shape, want, len(data))
	}
	return nil
}

func dimsPtr(shape tensor.Shape) *int64 {
	if len(shape) == 0 {
		return nil
	}
	return &shape[0]
}

// NewTensor creates a tensor over the caller's buffer without copying. The
// value anchors data so the buffer stays reachable, but the caller must not
// grow the slice or let its array move for the value's lifetime. Writes on
// either side are visible on the other.
func NewTensor[T tensor.Element](data []T, shape tensor.Shape) (*Tensor[T], error) {
	if err := checkLen(data, shape); err != nil {
		return nil, err
	}

	info, err := memory.NewCPU(api.AllocatorArena, api.MemTypeCPUInput)
	if err != nil {
		return nil, err
	}
	defer info.Close()

	byteLen := uintptr(len(data)) * uintptr(tensor.SizeOf(tensor.ElementTypeOf[T]()))
	var h api.Value
	st := engine.Table().CreateTensorWithDataAsOrtValue(info.Handle(), unsafe.Pointer(&data[0]), byteLen, dimsPtr(shape), uintptr(len(shape)), tensor.ElementTypeOf[T](), &h)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	return &Tensor[T]{val: *newValue(h, true, data)}, nil
}

// NewEmpty creates an engine-allocated zero-filled tensor. Use it to build
// an output buffer or a tensor whose lifetime is independent of any host
// slice; fill it through Data or SetAt.
func NewEmpty[T tensor.Element](shape tensor.Shape) (*Tensor[T], error) {
	if err := checkDims(shape); err != nil {
		return nil, err
	}
	alloc, err := memory.Default()
	if err != nil {
		return nil, err
	}

	var h api.Value
	st := engine.Table().CreateTensorAsOrtValue(alloc.Handle(), dimsPtr(shape), uintptr(len(shape)), tensor.ElementTypeOf[T](), &h)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	return &Tensor[T]{val: *newValue(h, true, nil)}, nil
}

// NewTensorFromView creates a tensor from a view. A contiguous view shares
// its buffer with the tensor; a strided view is compacted first and the
// copy becomes the backing buffer.
func NewTensorFromView[T tensor.Element](v *tensor.View[T]) (*Tensor[T], error) {
	return NewTensor(v.Contiguous(), v.Shape())
}

// NewTensorRaw creates a tensor over pre-allocated memory described by
// info, typically on a device. Nothing anchors ptr; the caller keeps it
// valid and sized to the shape for the value's lifetime.
func NewTensorRaw[T tensor.Element](info *memory.Info, ptr unsafe.Pointer, shape tensor.Shape) (*Tensor[T], error) {
	byteLen := uintptr(shape.Elements()) * uintptr(tensor.SizeOf(tensor.ElementTypeOf[T]()))

	var h api.Value
	st := engine.Table().CreateTensorWithDataAsOrtValue(info.Handle(), ptr, byteLen, dimsPtr(shape), uintptr(len(shape)), tensor.ElementTypeOf[T](), &h)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	return &Tensor[T]{val: *newValue(h, true, nil)}, nil
}

// NewDynTensor creates a tensor over raw little-endian bytes with a
// declared element type. This is the path for element types without a Go
// representation, such as float16. The value anchors data; the caller must
// not grow the slice.
func NewDynTensor(elem api.ElementDataType, data []byte, shape tensor.Shape) (*DynTensor, error) {
	size := tensor.SizeOf(elem)
	if size == 0 {
		return nil, errors.Unsupported("element type %s has no fixed byte width", elemName(elem))
	}
	if err := checkDims(shape); err != nil {
		return nil, err
	}
	want := shape.Elements() * int64(size)
	if int64(len(data)) != want {
		return nil, errors.InvalidArgument("shape %s of %s needs %d bytes, %d provided", shape, elemName(elem), want, len(data))
	}

	info, err := memory.NewCPU(api.AllocatorArena, api.MemTypeCPUInput)
	if err != nil {
		return nil, err
	}
	defer info.Close()

	var h api.Value
	st := engine.Table().CreateTensorWithDataAsOrtValue(info.Handle(), unsafe.Pointer(&data[0]), uintptr(want), dimsPtr(shape), uintptr(len(shape)), elem, &h)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	return &DynTensor{val: *newValue(h, true, data), elem: elem}, nil
}

// AsTensor gives typed access to a tensor value. The result shares v's
// owner: closing either closes both, exactly once. It fails when the value
// is not a tensor or its element type is not T.
func AsTensor[T tensor.Element](v *Value) (*Tensor[T], error) {
	h, err := v.handle()
	if err != nil {
		return nil, err
	}
	kind, err := v.Type()
	if err != nil {
		return nil, err
	}
	if kind != api.TypeTensor {
		return nil, errors.InvalidArgument("value is a %s, not a tensor", kindName(kind))
	}
	elem, err := elementOf(h)
	if err != nil {
		return nil, err
	}
	if want := tensor.ElementTypeOf[T](); elem != want {
		return nil, errors.InvalidArgument("tensor holds %s, requested %s", elemName(elem), elemName(want))
	}
	return &Tensor[T]{val: *v}, nil
}

// AsDynTensor gives untyped tensor access to a tensor value, sharing v's
// owner the same way AsTensor does.
func AsDynTensor(v *Value) (*DynTensor, error) {
	h, err := v.handle()
	if err != nil {
		return nil, err
	}
	kind, err := v.Type()
	if err != nil {
		return nil, err
	}
	if kind != api.TypeTensor {
		return nil, errors.InvalidArgument("value is a %s, not a tensor", kindName(kind))
	}
	elem, err := elementOf(h)
	if err != nil {
		return nil, err
	}
	return &DynTensor{val: *v, elem: elem}, nil
}

func kindName(k api.ONNXType) string {
	switch k {
	case api.TypeTensor:
		return "tensor"
	case api.TypeSequence:
		return "sequence"
	case api.TypeMap:
		return "map"
	case api.TypeOpaque:
		return "opaque value"
	case api.TypeSparseTensor:
		return "sparse tensor"
	case api.TypeOptional:
		return "optional"
	}
	return "value of unknown kind"
}

// Close drops the owner shared with the source value.
func (t *Tensor[T]) Close() error {
	return t.val.Close()
}

// Upcast returns the tensor as an untyped value sharing the same owner.
func (t *Tensor[T]) Upcast() *Value {
	v := t.val
	return &v
}

// Handle returns the engine handle, or ErrClosed after Close.
func (t *Tensor[T]) Handle() (api.Value, error) {
	return t.val.handle()
}

// ElementType returns the wire-level element type of T.
func (t *Tensor[T]) ElementType() api.ElementDataType {
	return tensor.ElementTypeOf[T]()
}

// Shape returns the tensor's dimensions.
func (t *Tensor[T]) Shape() (tensor.Shape, error) {
	return t.val.Shape()
}

// Memory returns placement metadata for the tensor's allocation.
func (t *Tensor[T]) Memory() (*memory.Info, error) {
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	return memory.FromValue(h)
}

// DataPtr returns the raw data pointer. It stays owned by the value, and
// callers must consult Memory before dereferencing: the pointer may name
// device memory.
func (t *Tensor[T]) DataPtr() (unsafe.Pointer, error) {
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	var p unsafe.Pointer
	if err := errors.FromStatus(engine.Table().GetTensorMutableData(h, &p)); err != nil {
		return nil, err
	}
	return p, nil
}

// Data returns the elements as a slice aliasing the tensor's memory. The
// slice is valid until the value closes and must not be kept past that.
// Data fails for tensors whose memory is not host-accessible.
func (t *Tensor[T]) Data() ([]T, error) {
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	if err := checkHostAccessible(h); err != nil {
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
	var p unsafe.Pointer
	if err := errors.FromStatus(engine.Table().GetTensorMutableData(h, &p)); err != nil {
		return nil, err
	}
	if err := errors.NonNull(p, "GetTensorMutableData"); err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

func checkHostAccessible(h api.Value) error {
	info, err := memory.FromValue(h)
	if err != nil {
		return err
	}
	if !info.IsCPUAccessible() {
		return errors.Unsupported("tensor memory lives on a device and is not host-accessible")
	}
	return nil
}

// At returns one element. Like slice indexing it panics when the value is
// closed, an index is out of range, or the data is not host-accessible;
// use Data for fallible access.
func (t *Tensor[T]) At(indices ...int64) T {
	return *(*T)(t.elemPtr(indices))
}

// SetAt writes one element, with At's panic contract.
func (t *Tensor[T]) SetAt(value T, indices ...int64) {
	*(*T)(t.elemPtr(indices)) = value
}

func (t *Tensor[T]) elemPtr(indices []int64) unsafe.Pointer {
	h, err := t.val.handle()
	if err != nil {
		panic("ort: " + err.Error())
	}
	if err := checkHostAccessible(h); err != nil {
		panic("ort: " + err.Error())
	}
	var idx *int64
	if len(indices) > 0 {
		idx = &indices[0]
	}
	var p unsafe.Pointer
	if err := errors.FromStatus(engine.Table().TensorAt(h, idx, uintptr(len(indices)), &p)); err != nil {
		panic("ort: " + err.Error())
	}
	if err := errors.NonNull(p, "TensorAt"); err != nil {
		panic("ort: " + err.Error())
	}
	return p
}

// Close drops the owner shared with the source value.
func (t *DynTensor) Close() error {
	return t.val.Close()
}

// Upcast returns the tensor as an untyped value sharing the same owner.
func (t *DynTensor) Upcast() *Value {
	v := t.val
	return &v
}

// Handle returns the engine handle, or ErrClosed after Close.
func (t *DynTensor) Handle() (api.Value, error) {
	return t.val.handle()
}

// ElementType returns the tensor's wire-level element type.
func (t *DynTensor) ElementType() api.ElementDataType {
	return t.elem
}

// Shape returns the tensor's dimensions.
func (t *DynTensor) Shape() (tensor.Shape, error) {
	return t.val.Shape()
}

// Memory returns placement metadata for the tensor's allocation.
func (t *DynTensor) Memory() (*memory.Info, error) {
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	return memory.FromValue(h)
}

// RawData returns the elements as bytes aliasing the tensor's memory,
// valid until the value closes. String tensors have no flat
// representation.
func (t *DynTensor) RawData() ([]byte, error) {
	if t.elem == api.ElemString {
		return nil, errors.InvalidArgument("string tensors have no flat byte representation")
	}
	h, err := t.val.handle()
	if err != nil {
		return nil, err
	}
	if err := checkHostAccessible(h); err != nil {
		return nil, err
	}
	shape, err := shapeOf(h)
	if err != nil {
		return nil, err
	}
	size := shape.Elements() * int64(tensor.SizeOf(t.elem))
	if size == 0 {
		return nil, nil
	}
	var p unsafe.Pointer
	if err := errors.FromStatus(engine.Table().GetTensorMutableData(h, &p)); err != nil {
		return nil, err
	}
	if err := errors.NonNull(p, "GetTensorMutableData"); err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), size), nil
}
