package enginetest

import (
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/tensor"
)

func elemCount(dims []int64) int64 {
	total := int64(1)
	for _, d := range dims {
		if d < 0 {
			return 0
		}
		total *= d
	}
	return total
}

func copyDims(dims *int64, n uintptr) []int64 {
	if n == 0 {
		return nil
	}
	src := unsafe.Slice(dims, n)
	out := make([]int64, n)
	copy(out, src)
	return out
}

// newValueLocked registers a value record. Callers hold s.mu.
func (s *Store) newValueLocked(rec *valueRec) api.Value {
	h := api.Value(s.handle())
	s.values[h] = rec
	return h
}

// NewTensor fabricates an engine-owned tensor holding data, the way Run
// outputs appear to callers.
func (s *Store) NewTensor(elem api.ElementDataType, dims []int64, data []byte) api.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &valueRec{elem: elem, dims: append([]int64(nil), dims...)}
	if len(data) > 0 {
		rec.data = append([]byte(nil), data...)
		rec.ptr = unsafe.Pointer(&rec.data[0])
	}
	return s.newValueLocked(rec)
}

// NewDeviceTensor fabricates a tensor whose memory lives off the host, for
// exercising device placement checks.
func (s *Store) NewDeviceTensor(elem api.ElementDataType, dims []int64) api.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := api.MemoryInfo(s.handle())
	s.infos[info] = &infoRec{name: "Cuda", dev: api.DeviceGPU, mem: api.MemTypeDefault}
	rec := &valueRec{elem: elem, dims: append([]int64(nil), dims...), info: info}
	return s.newValueLocked(rec)
}

// Tensor and value entries.

func (s *Store) createTensorWithDataAsOrtValue(info api.MemoryInfo, data unsafe.Pointer, dataLen uintptr, dims *int64, ndims uintptr, elem api.ElementDataType, out *api.Value) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.infos[info]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown memory info %#x", info)
	}
	d := copyDims(dims, ndims)
	want := elemCount(d) * int64(tensor.SizeOf(elem))
	if int64(dataLen) != want {
		return fail(api.ErrorInvalidArgument, "buffer is %d bytes, shape needs %d", dataLen, want)
	}
	*out = s.newValueLocked(&valueRec{elem: elem, dims: d, ptr: data})
	return 0
}

func (s *Store) createTensorAsOrtValue(_ api.Allocator, dims *int64, ndims uintptr, elem api.ElementDataType, out *api.Value) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := copyDims(dims, ndims)
	count := elemCount(d)
	rec := &valueRec{elem: elem, dims: d}
	if elem == api.ElemString {
		rec.strs = make([]string, count)
	} else if size := count * int64(tensor.SizeOf(elem)); size > 0 {
		rec.data = make([]byte, size)
		rec.ptr = unsafe.Pointer(&rec.data[0])
	}
	*out = s.newValueLocked(rec)
	return 0
}

func (s *Store) isTensor(v api.Value, out *int32) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[v]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	*out = 1
	return 0
}

func (s *Store) getValueType(v api.Value, out *api.ONNXType) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[v]; !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	*out = api.TypeTensor
	return 0
}

func (s *Store) getTensorMutableData(v api.Value, out *unsafe.Pointer) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	if rec.elem == api.ElemString {
		return fail(api.ErrorInvalidArgument, "string tensor data is not directly accessible")
	}
	*out = rec.ptr
	return 0
}

func (s *Store) getTensorTypeAndShape(v api.Value, out *api.TensorTypeAndShapeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	h := api.TensorTypeAndShapeInfo(s.handle())
	s.shapes[h] = &shapeRec{elem: rec.elem, dims: append([]int64(nil), rec.dims...), owned: true}
	*out = h
	return 0
}

func (s *Store) getTensorElementType(h api.TensorTypeAndShapeInfo, out *api.ElementDataType) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shapes[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown shape info %#x", h)
	}
	*out = rec.elem
	return 0
}

func (s *Store) getDimensionsCount(h api.TensorTypeAndShapeInfo, out *uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shapes[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown shape info %#x", h)
	}
	*out = uintptr(len(rec.dims))
	return 0
}

func (s *Store) getDimensions(h api.TensorTypeAndShapeInfo, out *int64, n uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shapes[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown shape info %#x", h)
	}
	dst := unsafe.Slice(out, n)
	copy(dst, rec.dims)
	return 0
}

func (s *Store) getSymbolicDimensions(h api.TensorTypeAndShapeInfo, out **byte, n uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shapes[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown shape info %#x", h)
	}
	dst := unsafe.Slice(out, n)
	for i := range dst {
		name := ""
		if i < len(rec.symbolic) {
			name = rec.symbolic[i]
		}
		dst[i] = s.staticCString(name)
	}
	return 0
}

func (s *Store) getTensorShapeElementCount(h api.TensorTypeAndShapeInfo, out *uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shapes[h]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown shape info %#x", h)
	}
	*out = uintptr(elemCount(rec.dims))
	return 0
}

func (s *Store) tensorAt(v api.Value, indices *int64, n uintptr, out *unsafe.Pointer) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	if rec.elem == api.ElemString {
		return fail(api.ErrorInvalidArgument, "string tensor elements are not addressable")
	}
	if int(n) != len(rec.dims) {
		return fail(api.ErrorInvalidArgument, "%d indices for rank %d tensor", n, len(rec.dims))
	}
	idx := unsafe.Slice(indices, n)
	flat := int64(0)
	for i, ix := range idx {
		if ix < 0 || ix >= rec.dims[i] {
			return fail(api.ErrorInvalidArgument, "index %d out of range for dimension %d", ix, i)
		}
		flat = flat*rec.dims[i] + ix
	}
	if rec.ptr == nil {
		return fail(api.ErrorInvalidArgument, "tensor has no data")
	}
	*out = unsafe.Add(rec.ptr, uintptr(flat)*uintptr(tensor.SizeOf(rec.elem)))
	return 0
}

func (s *Store) releaseValue(v api.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.values[v]; ok {
		rec.releases++
	}
}

func (s *Store) releaseTensorTypeAndShapeInfo(h api.TensorTypeAndShapeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.shapes[h]; ok {
		rec.releases++
	}
}

// String tensor entries.

func (s *Store) fillStringTensor(v api.Value, strs **byte, n uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	if rec.elem != api.ElemString {
		return fail(api.ErrorInvalidArgument, "value is not a string tensor")
	}
	if int64(n) != elemCount(rec.dims) {
		return fail(api.ErrorInvalidArgument, "%d strings for %d elements", n, elemCount(rec.dims))
	}
	ptrs := unsafe.Slice(strs, n)
	out := make([]string, n)
	for i, p := range ptrs {
		out[i] = api.GoStringPtr(p)
	}
	rec.strs = out
	return 0
}

func (s *Store) getStringTensorDataLength(v api.Value, out *uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok || rec.elem != api.ElemString {
		return fail(api.ErrorInvalidArgument, "value is not a string tensor")
	}
	total := 0
	for _, str := range rec.strs {
		total += len(str)
	}
	*out = uintptr(total)
	return 0
}

func (s *Store) getStringTensorContent(v api.Value, buf unsafe.Pointer, bufLen uintptr, offsets *uintptr, offLen uintptr) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok || rec.elem != api.ElemString {
		return fail(api.ErrorInvalidArgument, "value is not a string tensor")
	}
	if int(offLen) != len(rec.strs) {
		return fail(api.ErrorInvalidArgument, "%d offsets for %d strings", offLen, len(rec.strs))
	}
	total := 0
	for _, str := range rec.strs {
		total += len(str)
	}
	if int(bufLen) < total {
		return fail(api.ErrorInvalidArgument, "buffer is %d bytes, content needs %d", bufLen, total)
	}

	dst := unsafe.Slice((*byte)(buf), bufLen)
	offs := unsafe.Slice(offsets, offLen)
	pos := 0
	for i, str := range rec.strs {
		offs[i] = uintptr(pos)
		copy(dst[pos:], str)
		pos += len(str)
	}
	return 0
}

// Type introspection entries.

// MakeTensorTypeInfo hands out an owned TypeInfo describing a tensor.
func (s *Store) MakeTensorTypeInfo(spec TensorSpec) api.TypeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.makeTensorTypeInfoLocked(spec)
}

func (s *Store) makeTensorTypeInfoLocked(spec TensorSpec) api.TypeInfo {
	sh := api.TensorTypeAndShapeInfo(s.handle())
	s.shapes[sh] = &shapeRec{
		elem:     spec.Elem,
		dims:     append([]int64(nil), spec.Dims...),
		symbolic: append([]string(nil), spec.Symbolic...),
	}
	ti := api.TypeInfo(s.handle())
	s.typeInfos[ti] = &typeInfoRec{onnx: api.TypeTensor, shape: sh}
	return ti
}

// MakeSequenceTypeInfo hands out an owned TypeInfo describing a sequence
// whose elements are tensors of the given spec.
func (s *Store) MakeSequenceTypeInfo(elem TensorSpec) api.TypeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	sq := api.SequenceTypeInfo(s.handle())
	s.seqInfos[sq] = &seqInfoRec{elem: func() api.TypeInfo {
		return s.makeTensorTypeInfoLocked(elem)
	}}
	ti := api.TypeInfo(s.handle())
	s.typeInfos[ti] = &typeInfoRec{onnx: api.TypeSequence, seq: sq}
	return ti
}

// MakeMapTypeInfo hands out an owned TypeInfo describing a map from key to
// tensors of the given spec.
func (s *Store) MakeMapTypeInfo(key api.ElementDataType, value TensorSpec) api.TypeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	mp := api.MapTypeInfo(s.handle())
	s.mapInfos[mp] = &mapInfoRec{key: key, value: func() api.TypeInfo {
		return s.makeTensorTypeInfoLocked(value)
	}}
	ti := api.TypeInfo(s.handle())
	s.typeInfos[ti] = &typeInfoRec{onnx: api.TypeMap, mp: mp}
	return ti
}

func (s *Store) getTypeInfo(v api.Value, out *api.TypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.values[v]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown value %#x", v)
	}
	*out = s.makeTensorTypeInfoLocked(TensorSpec{Elem: rec.elem, Dims: rec.dims})
	return 0
}

func (s *Store) getOnnxTypeFromTypeInfo(ti api.TypeInfo, out *api.ONNXType) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.typeInfos[ti]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown type info %#x", ti)
	}
	*out = rec.onnx
	return 0
}

func (s *Store) castTypeInfoToTensorInfo(ti api.TypeInfo, out *api.TensorTypeAndShapeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.typeInfos[ti]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown type info %#x", ti)
	}
	// Non-tensor type infos cast to null, matching the engine.
	*out = rec.shape
	return 0
}

func (s *Store) castTypeInfoToSequenceTypeInfo(ti api.TypeInfo, out *api.SequenceTypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.typeInfos[ti]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown type info %#x", ti)
	}
	*out = rec.seq
	return 0
}

func (s *Store) castTypeInfoToMapTypeInfo(ti api.TypeInfo, out *api.MapTypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.typeInfos[ti]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown type info %#x", ti)
	}
	*out = rec.mp
	return 0
}

func (s *Store) getSequenceElementType(sq api.SequenceTypeInfo, out *api.TypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.seqInfos[sq]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown sequence info %#x", sq)
	}
	*out = rec.elem()
	return 0
}

func (s *Store) getMapKeyType(mp api.MapTypeInfo, out *api.ElementDataType) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.mapInfos[mp]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown map info %#x", mp)
	}
	*out = rec.key
	return 0
}

func (s *Store) getMapValueType(mp api.MapTypeInfo, out *api.TypeInfo) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.mapInfos[mp]
	if !ok {
		return fail(api.ErrorInvalidArgument, "unknown map info %#x", mp)
	}
	*out = rec.value()
	return 0
}

func (s *Store) releaseTypeInfo(ti api.TypeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.typeInfos[ti]; ok {
		rec.releases++
	}
}

func (s *Store) releaseSequenceTypeInfo(sq api.SequenceTypeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.seqInfos[sq]; ok {
		rec.releases++
	}
}

func (s *Store) releaseMapTypeInfo(mp api.MapTypeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.mapInfos[mp]; ok {
		rec.releases++
	}
}
