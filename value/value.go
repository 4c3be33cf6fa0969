package value

import (
	goerrors "errors"
	"sync/atomic"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/tensor"
)

// ErrClosed is returned when a value is used after Close.
var ErrClosed = goerrors.New("value used after close")

// inner is the shared owner state behind every Value and typed view.
type inner struct {
	handle  api.Value
	refs    atomic.Int64
	release bool
	anchor  any
}

func (in *inner) retain() {
	in.refs.Add(1)
}

func (in *inner) drop() {
	if in.refs.Add(-1) != 0 {
		return
	}
	if in.release && in.handle != 0 {
		engine.Table().ReleaseValue(in.handle)
	}
	in.anchor = nil
}

// Value is one owner of an engine value of any kind. Use AsTensor or
// AsDynTensor for typed tensor access.
type Value struct {
	in     *inner
	closed *atomic.Bool
}

func newValue(h api.Value, release bool, anchor any) *Value {
	in := &inner{handle: h, release: release, anchor: anchor}
	in.refs.Store(1)
	return &Value{in: in, closed: new(atomic.Bool)}
}

// Wrap adopts an engine value handle. release controls whether the handle
// is released when the last owner closes; pass false for handles the
// engine keeps ownership of.
func Wrap(h api.Value, release bool) (*Value, error) {
	if h == 0 {
		return nil, errors.InvalidArgument("cannot wrap a null value handle")
	}
	return newValue(h, release, nil), nil
}

func (v *Value) handle() (api.Value, error) {
	if v.closed.Load() {
		return 0, ErrClosed
	}
	return v.in.handle, nil
}

// Handle returns the engine handle, or ErrClosed after Close. The handle
// stays owned by the value.
func (v *Value) Handle() (api.Value, error) {
	return v.handle()
}

// Clone adds an owner sharing the same engine value. Every owner must be
// closed; the handle is released when the last one goes.
func (v *Value) Clone() (*Value, error) {
	if v.closed.Load() {
		return nil, ErrClosed
	}
	v.in.retain()
	return &Value{in: v.in, closed: new(atomic.Bool)}, nil
}

// Close drops this owner. Close is idempotent; only the first call counts.
func (v *Value) Close() error {
	if v.closed.Swap(true) {
		return nil
	}
	v.in.drop()
	return nil
}

// Type returns the value's kind.
func (v *Value) Type() (api.ONNXType, error) {
	h, err := v.handle()
	if err != nil {
		return 0, err
	}
	var kind api.ONNXType
	if err := errors.FromStatus(engine.Table().GetValueType(h, &kind)); err != nil {
		return 0, err
	}
	return kind, nil
}

// IsTensor reports whether the value holds a tensor.
func (v *Value) IsTensor() (bool, error) {
	h, err := v.handle()
	if err != nil {
		return false, err
	}
	var flag int32
	if err := errors.FromStatus(engine.Table().IsTensor(h, &flag)); err != nil {
		return false, err
	}
	return flag != 0, nil
}

// ValueType reads the full type descriptor.
func (v *Value) ValueType() (*ValueType, error) {
	h, err := v.handle()
	if err != nil {
		return nil, err
	}
	t := engine.Table()
	var ti api.TypeInfo
	if err := errors.FromStatus(t.GetTypeInfo(h, &ti)); err != nil {
		return nil, err
	}
	defer t.ReleaseTypeInfo(ti)
	return TypeFromTypeInfo(ti)
}

// Shape returns the dimensions of a tensor value.
func (v *Value) Shape() (tensor.Shape, error) {
	h, err := v.handle()
	if err != nil {
		return nil, err
	}
	return shapeOf(h)
}

func shapeOf(h api.Value) (tensor.Shape, error) {
	_, dims, err := tensorDetail(h)
	return dims, err
}

func elementOf(h api.Value) (api.ElementDataType, error) {
	elem, _, err := tensorDetail(h)
	return elem, err
}

func tensorDetail(h api.Value) (api.ElementDataType, tensor.Shape, error) {
	t := engine.Table()
	var si api.TensorTypeAndShapeInfo
	if err := errors.FromStatus(t.GetTensorTypeAndShape(h, &si)); err != nil {
		return 0, nil, err
	}
	defer t.ReleaseTensorTypeAndShapeInfo(si)
	elem, dims, _, err := shapeInfoDetail(si)
	return elem, dims, err
}
