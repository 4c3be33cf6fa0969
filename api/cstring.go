package api

import "unsafe"

// CString returns a NUL-terminated copy of s for use as a C string argument.
// The buffer must stay reachable for the duration of the engine call. Callers
// are responsible for rejecting strings with interior NUL bytes; the engine
// would read a truncated string.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// CStrings converts items to NUL-terminated C strings. The returned slice
// backs array-of-string arguments: pass &out[0] and keep out reachable for
// the duration of the call.
func CStrings(items []string) []*byte {
	out := make([]*byte, len(items))
	for i, s := range items {
		out[i] = CString(s)
	}
	return out
}

// GoString copies a NUL-terminated C string into a Go string. A nil pointer
// yields the empty string.
func GoString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// GoStringPtr is GoString over a *byte, the shape most out-parameters take.
func GoStringPtr(p *byte) string {
	return GoString(unsafe.Pointer(p))
}
