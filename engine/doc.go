// Package engine locates the ONNX Runtime shared library and resolves its
// C API function table.
//
// Resolution happens once per process, on the first Table call:
//
//  1. Pick the library path: ORT_DYLIB_PATH if set, otherwise the platform
//     default name. Relative paths are tried next to the executable first.
//  2. Load the library and call OrtGetApiBase.
//  3. Compare GetVersionString against the supported release line. An older
//     engine is a hard failure; a newer one logs a warning and proceeds.
//  4. Request the API table for the supported generation. A nil table is a
//     hard failure.
//
// Failures during resolution panic: nothing in this module can work without
// the table, and every later call would fail the same way.
//
// Install routes the process to an in-memory table instead, for alternative
// backends that implement the C API in Go and for tests. Install is only
// legal before the first Table call.
package engine
