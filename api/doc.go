// Package api declares the raw ONNX Runtime C API surface used by this module.
//
// Engine objects are referred to by opaque handles; every handle type here is
// a uintptr naming one C pointer type. Table is the bridge itself: one Go
// function per bound C entry point. In a normal process the engine package
// fills the Table from the shared library's function pointer array; an
// alternative backend or a test installs a Table of plain Go functions
// instead.
//
// Nothing in this package calls the engine. Higher layers receive a *Table
// and own all call discipline: checking statuses, releasing handles, and
// keeping Go memory reachable across calls.
package api
