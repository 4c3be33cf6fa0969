package memory

import (
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
)

// Allocator wraps an engine allocator handle.
type Allocator struct {
	handle api.Allocator
}

// Default returns the engine's shared CPU allocator. The engine owns it;
// there is nothing to release.
func Default() (Allocator, error) {
	var h api.Allocator
	if err := errors.FromStatus(engine.Table().GetAllocatorWithDefaultOptions(&h)); err != nil {
		return Allocator{}, err
	}
	return Allocator{handle: h}, nil
}

// Handle exposes the raw handle for calls that take an allocator.
func (a Allocator) Handle() api.Allocator {
	return a.handle
}

// Free returns engine-allocated memory, such as the name buffers handed out
// by session introspection. Freeing nil does nothing.
func (a Allocator) Free(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}
	return errors.FromStatus(engine.Table().AllocatorFree(a.handle, p))
}

// FreeAll returns a batch of engine-allocated pointers, keeping the first
// failure.
func (a Allocator) FreeAll(ps []unsafe.Pointer) error {
	var first error
	for _, p := range ps {
		if err := a.Free(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}
