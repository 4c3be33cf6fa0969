package providers

import "strconv"

// CUDAArenaStrategy selects how the device memory arena grows.
type CUDAArenaStrategy string

const (
	ArenaNextPowerOfTwo  CUDAArenaStrategy = "kNextPowerOfTwo"
	ArenaSameAsRequested CUDAArenaStrategy = "kSameAsRequested"
)

// CUDAConvAlgoSearch selects how convolution kernels are chosen.
type CUDAConvAlgoSearch string

const (
	ConvAlgoExhaustive CUDAConvAlgoSearch = "EXHAUSTIVE"
	ConvAlgoHeuristic  CUDAConvAlgoSearch = "HEURISTIC"
	ConvAlgoDefault    CUDAConvAlgoSearch = "DEFAULT"
)

// CUDA configures the CUDA execution provider. The zero value leaves every
// knob at the engine default, which targets device 0.
type CUDA struct {
	DeviceID int

	// MemLimit caps the device arena in bytes. Zero means unlimited.
	MemLimit uint64

	ArenaStrategy  CUDAArenaStrategy
	ConvAlgoSearch CUDAConvAlgoSearch

	// CopyInDefaultStream forces host/device copies onto the compute
	// stream, trading overlap for simpler synchronization.
	CopyInDefaultStream bool

	// Extra passes through additional provider options verbatim.
	Extra map[string]string
}

func (CUDA) Name() string { return "CUDA" }

func (CUDA) CanonicalName() string { return "CUDAExecutionProvider" }

func (c CUDA) Options() map[string]string {
	opts := make(map[string]string)
	if c.DeviceID != 0 {
		opts["device_id"] = strconv.Itoa(c.DeviceID)
	}
	if c.MemLimit != 0 {
		opts["gpu_mem_limit"] = strconv.FormatUint(c.MemLimit, 10)
	}
	if c.ArenaStrategy != "" {
		opts["arena_extend_strategy"] = string(c.ArenaStrategy)
	}
	if c.ConvAlgoSearch != "" {
		opts["cudnn_conv_algo_search"] = string(c.ConvAlgoSearch)
	}
	if c.CopyInDefaultStream {
		opts["do_copy_in_default_stream"] = "1"
	}
	for k, v := range c.Extra {
		opts[k] = v
	}
	return opts
}
