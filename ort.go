package ort

const (
	// APIVersion is the C API generation requested from the runtime library
	// via OrtApiBase::GetApi.
	APIVersion uint32 = 23

	// RuntimeMinor is the minor release line of ONNX Runtime this module is
	// written against. The loaded library reports its version through
	// GetVersionString; a smaller minor than this is rejected.
	RuntimeMinor = 23
)
