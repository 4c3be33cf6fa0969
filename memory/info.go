// Package memory wraps the engine's allocator and device placement metadata.
package memory

import (
	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
)

// AllocationDevice identifies the allocator behind a piece of memory, as
// the engine names it. Pinned variants are host memory staged for a device
// and stay directly readable from Go.
type AllocationDevice string

const (
	AllocCPU          AllocationDevice = "Cpu"
	AllocCUDA         AllocationDevice = "Cuda"
	AllocCUDAPinned   AllocationDevice = "CudaPinned"
	AllocCANN         AllocationDevice = "Cann"
	AllocCANNPinned   AllocationDevice = "CannPinned"
	AllocDML          AllocationDevice = "DML"
	AllocHIP          AllocationDevice = "Hip"
	AllocHIPPinned    AllocationDevice = "HipPinned"
	AllocOpenVINOCPU  AllocationDevice = "OpenVINO_CPU"
	AllocOpenVINOGPU  AllocationDevice = "OpenVINO_GPU"
	AllocWebGPUBuffer AllocationDevice = "WebGPU_Buffer"
)

// Info describes where a tensor's backing allocation lives. An Info is
// either owned, created by NewCPU and released by Close, or a view of
// engine-owned metadata obtained from a value, for which Close is a no-op.
type Info struct {
	handle api.MemoryInfo
	owned  bool
}

// NewCPU creates memory info describing a host allocation.
func NewCPU(alloc api.AllocatorType, mem api.MemType) (*Info, error) {
	var h api.MemoryInfo
	if err := errors.FromStatus(engine.Table().CreateCpuMemoryInfo(alloc, mem, &h)); err != nil {
		return nil, err
	}
	return &Info{handle: h, owned: true}, nil
}

// FromValue returns placement metadata for a value's backing allocation.
// The engine owns the result; it stays valid while the value is alive.
func FromValue(v api.Value) (*Info, error) {
	var h api.MemoryInfo
	if err := errors.FromStatus(engine.Table().GetTensorMemoryInfo(v, &h)); err != nil {
		return nil, err
	}
	return &Info{handle: h, owned: false}, nil
}

// Name returns the allocator name, such as "Cpu".
func (i *Info) Name() (string, error) {
	var p *byte
	if err := errors.FromStatus(engine.Table().MemoryInfoGetName(i.handle, &p)); err != nil {
		return "", err
	}
	return api.GoStringPtr(p), nil
}

// Device returns which allocator owns the described memory.
func (i *Info) Device() (AllocationDevice, error) {
	name, err := i.Name()
	if err != nil {
		return "", err
	}
	return AllocationDevice(name), nil
}

// MemType returns the allocation's memory type.
func (i *Info) MemType() (api.MemType, error) {
	var m api.MemType
	if err := errors.FromStatus(engine.Table().MemoryInfoGetMemType(i.handle, &m)); err != nil {
		return 0, err
	}
	return m, nil
}

// DeviceType returns the coarse device class of the allocation.
func (i *Info) DeviceType() api.DeviceType {
	var d api.DeviceType
	engine.Table().MemoryInfoGetDeviceType(i.handle, &d)
	return d
}

// IsCPUAccessible reports whether the described memory can be read and
// written directly from Go.
func (i *Info) IsCPUAccessible() bool {
	return i.DeviceType() == api.DeviceCPU
}

// Handle exposes the raw handle for value construction.
func (i *Info) Handle() api.MemoryInfo {
	return i.handle
}

// Close releases an owned Info. Closing a view or an already closed Info
// does nothing.
func (i *Info) Close() error {
	if i.owned && i.handle != 0 {
		engine.Table().ReleaseMemoryInfo(i.handle)
		i.handle = 0
	}
	return nil
}
