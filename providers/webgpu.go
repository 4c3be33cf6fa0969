package providers

import "strconv"

// WebGPULayout selects the tensor layout the WebGPU provider prefers.
type WebGPULayout string

const (
	LayoutNCHW WebGPULayout = "NCHW"
	LayoutNHWC WebGPULayout = "NHWC"
)

// WebGPUBackend selects the Dawn backend driving the provider.
type WebGPUBackend string

const (
	BackendVulkan WebGPUBackend = "Vulkan"
	BackendD3D12  WebGPUBackend = "D3D12"
)

// WebGPUCacheMode selects a GPU buffer cache strategy.
type WebGPUCacheMode string

const (
	CacheDisabled    WebGPUCacheMode = "disabled"
	CacheLazyRelease WebGPUCacheMode = "lazyRelease"
	CacheSimple      WebGPUCacheMode = "simple"
	CacheBucket      WebGPUCacheMode = "bucket"
)

// WebGPUValidation selects how strictly the provider validates GPU work.
type WebGPUValidation string

const (
	ValidationDisabled WebGPUValidation = "disabled"
	ValidationWgpuOnly WebGPUValidation = "wgpuOnly"
	ValidationBasic    WebGPUValidation = "basic"
	ValidationFull     WebGPUValidation = "full"
)

// WebGPU configures the WebGPU execution provider. The zero value leaves
// every knob at the engine default.
type WebGPU struct {
	PreferredLayout WebGPULayout
	DawnBackend     WebGPUBackend
	DawnProcTable   string
	DeviceID        int
	GraphCapture    bool
	PIXCapture      bool

	StorageBufferCache      WebGPUCacheMode
	UniformBufferCache      WebGPUCacheMode
	QueryResolveBufferCache WebGPUCacheMode
	DefaultBufferCache      WebGPUCacheMode

	Validation WebGPUValidation

	// ForceCPUNodeNames lists graph nodes pinned to the CPU, in the
	// engine's newline-separated form.
	ForceCPUNodeNames string

	// Extra passes through additional provider options verbatim.
	Extra map[string]string
}

func (WebGPU) Name() string { return "WebGPU" }

func (WebGPU) CanonicalName() string { return "WebGpuExecutionProvider" }

func (w WebGPU) Options() map[string]string {
	opts := make(map[string]string)
	if w.PreferredLayout != "" {
		opts["WebGPU:preferredLayout"] = string(w.PreferredLayout)
	}
	if w.DawnBackend != "" {
		opts["WebGPU:dawnBackendType"] = string(w.DawnBackend)
	}
	if w.DawnProcTable != "" {
		opts["WebGPU:dawnProcTable"] = w.DawnProcTable
	}
	if w.DeviceID != 0 {
		opts["WebGPU:deviceId"] = strconv.Itoa(w.DeviceID)
	}
	if w.GraphCapture {
		opts["WebGPU:enableGraphCapture"] = "1"
	}
	if w.PIXCapture {
		opts["WebGPU:enablePIXCapture"] = "1"
	}
	if w.StorageBufferCache != "" {
		opts["WebGPU:storageBufferCacheMode"] = string(w.StorageBufferCache)
	}
	if w.UniformBufferCache != "" {
		opts["WebGPU:uniformBufferCacheMode"] = string(w.UniformBufferCache)
	}
	if w.QueryResolveBufferCache != "" {
		opts["WebGPU:queryResolveBufferCacheMode"] = string(w.QueryResolveBufferCache)
	}
	if w.DefaultBufferCache != "" {
		opts["WebGPU:defaultBufferCacheMode"] = string(w.DefaultBufferCache)
	}
	if w.Validation != "" {
		opts["WebGPU:validationMode"] = string(w.Validation)
	}
	if w.ForceCPUNodeNames != "" {
		opts["WebGPU:forceCpuNodeNames"] = w.ForceCPUNodeNames
	}
	for k, v := range w.Extra {
		opts[k] = v
	}
	return opts
}
