// Package value wraps engine values, most importantly tensors, behind
// reference-counted ownership.
//
// # Ownership
//
// Every Value shares an inner owner holding the engine handle, a reference
// count, and an anchor that keeps Go backing memory alive. Clone adds an
// owner; Close drops one. The engine handle is released exactly once, when
// the last owner closes, and only if the value was created with release
// semantics. Wrapping an engine-owned handle with release disabled makes
// Close a pure bookkeeping operation.
//
// Typed views returned by AsTensor and AsDynTensor share their source's
// owner rather than adding one: closing the view closes the source and the
// other way around, and double closes are absorbed. Upcast goes back the
// other way without any transfer.
//
// # Construction
//
// Tensors built from host data never copy it: NewTensor and NewDynTensor
// hand the caller's buffer to the engine and anchor it, so mutations alias
// in both directions. The exceptions are strided views, which
// NewTensorFromView compacts first because the engine requires contiguous
// memory, and string tensors, which the wire format forces NewStringTensor
// to copy element by element. NewEmpty allocates through the engine
// instead, and NewTensorRaw adopts pre-allocated device memory with no
// anchor at all.
//
// # Access
//
// Bulk access with Data aliases engine memory and is only allowed while the
// value is open and its memory is host-accessible; the returned slice must
// not outlive the value. Element access with At and SetAt follows Go's
// indexing contract and panics on rank or bounds violations.
package value
