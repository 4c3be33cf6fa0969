// Package providers assembles execution provider registrations. A provider
// renders to a name plus a flat key/value option list; the session package
// hands both to the engine when building session options. Nothing here
// touches values or statuses directly.
package providers

import (
	"unsafe"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
)

// Provider describes one execution provider registration.
type Provider interface {
	// Name is the short identifier the registration entry point expects,
	// such as "WebGPU".
	Name() string
	// CanonicalName is the engine's full provider name as reported by
	// Available, such as "WebGpuExecutionProvider".
	CanonicalName() string
	// Options returns the provider's configuration as flat key/value
	// pairs. The map may be nil when everything is left at defaults.
	Options() map[string]string
}

// Available returns the providers compiled into the engine, in the
// engine's own priority order.
func Available() ([]string, error) {
	t := engine.Table()

	var arr **byte
	var n int32
	if err := errors.FromStatus(t.GetAvailableProviders(&arr, &n)); err != nil {
		return nil, err
	}
	if arr == nil || n <= 0 {
		return nil, nil
	}
	names := make([]string, n)
	for i, p := range unsafe.Slice(arr, int(n)) {
		names[i] = api.GoStringPtr(p)
	}
	if err := errors.FromStatus(t.ReleaseAvailableProviders(arr, n)); err != nil {
		return nil, err
	}
	return names, nil
}

// IsAvailable reports whether the engine was built with the provider.
// Registration of an unavailable provider fails at session build time;
// checking first gives a cleaner fallback path.
func IsAvailable(p Provider) (bool, error) {
	names, err := Available()
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == p.CanonicalName() {
			return true, nil
		}
	}
	return false, nil
}
