//go:build !windows

package api

// CPath encodes a filesystem path for the engine. On this platform the
// engine takes NUL-terminated UTF-8.
func CPath(path string) []byte {
	return append([]byte(path), 0)
}

// GoPath decodes a path buffer in the engine's encoding, the inverse of
// CPath.
func GoPath(p *byte) string {
	return GoStringPtr(p)
}
