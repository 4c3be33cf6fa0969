package session

import (
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
	"github.com/wippyai/ort/memory"
)

// Metadata reads model metadata on demand. Every accessor fetches from the
// engine and frees the transfer buffer before returning.
type Metadata struct {
	h      api.ModelMetadata
	alloc  memory.Allocator
	closed atomic.Bool
}

func (m *Metadata) str(get func(api.ModelMetadata, api.Allocator, **byte) api.Status) (string, error) {
	if m.closed.Load() {
		return "", ErrClosed
	}
	var p *byte
	if err := errors.FromStatus(get(m.h, m.alloc.Handle(), &p)); err != nil {
		return "", err
	}
	if p == nil {
		return "", nil
	}
	out := api.GoStringPtr(p)
	if err := m.alloc.Free(unsafe.Pointer(p)); err != nil {
		return "", err
	}
	return out, nil
}

// Producer returns the name of the tool that produced the model.
func (m *Metadata) Producer() (string, error) {
	return m.str(engine.Table().ModelMetadataGetProducerName)
}

// GraphName returns the name of the model's graph.
func (m *Metadata) GraphName() (string, error) {
	return m.str(engine.Table().ModelMetadataGetGraphName)
}

// Domain returns the model's domain.
func (m *Metadata) Domain() (string, error) {
	return m.str(engine.Table().ModelMetadataGetDomain)
}

// Description returns the model's description.
func (m *Metadata) Description() (string, error) {
	return m.str(engine.Table().ModelMetadataGetDescription)
}

// GraphDescription returns the description of the model's graph.
func (m *Metadata) GraphDescription() (string, error) {
	return m.str(engine.Table().ModelMetadataGetGraphDescription)
}

// Version returns the model version number.
func (m *Metadata) Version() (int64, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	var v int64
	if err := errors.FromStatus(engine.Table().ModelMetadataGetVersion(m.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// Custom looks up a custom metadata key. ok is false when the key is
// absent.
func (m *Metadata) Custom(key string) (val string, ok bool, err error) {
	if m.closed.Load() {
		return "", false, ErrClosed
	}
	var p *byte
	st := engine.Table().ModelMetadataLookupCustomMetadataMap(m.h, m.alloc.Handle(), api.CString(key), &p)
	if err := errors.FromStatus(st); err != nil {
		return "", false, err
	}
	if p == nil {
		return "", false, nil
	}
	out := api.GoStringPtr(p)
	if err := m.alloc.Free(unsafe.Pointer(p)); err != nil {
		return "", false, err
	}
	return out, true, nil
}

// CustomKeys lists every custom metadata key.
func (m *Metadata) CustomKeys() ([]string, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	var arr **byte
	var n int64
	st := engine.Table().ModelMetadataGetCustomMetadataMapKeys(m.h, m.alloc.Handle(), &arr, &n)
	if err := errors.FromStatus(st); err != nil {
		return nil, err
	}
	if n == 0 || arr == nil {
		return nil, nil
	}
	ptrs := unsafe.Slice(arr, n)
	keys := make([]string, n)
	for i, p := range ptrs {
		keys[i] = api.GoStringPtr(p)
		if err := m.alloc.Free(unsafe.Pointer(p)); err != nil {
			return nil, err
		}
	}
	if err := m.alloc.Free(unsafe.Pointer(arr)); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close frees the metadata handle. Further calls do nothing.
func (m *Metadata) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	engine.Table().ReleaseModelMetadata(m.h)
	return nil
}
