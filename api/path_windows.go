//go:build windows

package api

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// CPath encodes a filesystem path for the engine. On this platform the
// engine takes NUL-terminated UTF-16, so the returned buffer holds
// little-endian code units.
func CPath(path string) []byte {
	u16, err := windows.UTF16FromString(path)
	if err != nil {
		u16 = []uint16{0}
	}
	b := make([]byte, len(u16)*2)
	for i, v := range u16 {
		b[2*i] = byte(v)
		b[2*i+1] = byte(v >> 8)
	}
	return b
}

// GoPath decodes a path buffer in the engine's encoding, the inverse of
// CPath.
func GoPath(p *byte) string {
	if p == nil {
		return ""
	}
	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(p)))
}
