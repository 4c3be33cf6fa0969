// Package ort provides Go bindings for the ONNX Runtime inference engine.
//
// The engine is reached through its versioned C API function table, loaded
// from a shared library at runtime. No cgo is involved: the table is resolved
// with purego, or supplied in-process by an alternative backend.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	ort/                 Root package with version constants and environment config
//	├── session/         High-level API: environments, sessions, model metadata
//	├── value/           Value ownership, typed tensor views, data extraction
//	├── tensor/          Element types, shapes, strided host views
//	├── providers/       Execution provider configuration
//	├── memory/          Allocation device metadata and engine allocators
//	├── engine/          Runtime library loading and API table resolution
//	├── errors/          Status bridge and structured error types
//	└── api/             Raw C API surface: handles, constants, function table
//
// # Quick Start
//
// Load a model and run inference:
//
//	env, err := session.NewEnvironment(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close()
//
//	sess, err := session.Open(env, "model.onnx", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	input, err := value.NewTensor([]float32{0.1, 0.2, 0.3}, tensor.Shape{1, 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer input.Close()
//
//	outputs, err := sess.Run([]session.NamedValue{{Name: "input", Value: input.Upcast()}})
//	fmt.Println(outputs)
//
// # Locating the Runtime Library
//
// The engine library is loaded on first use. The search order is:
//
//   - the ORT_DYLIB_PATH environment variable, when set
//   - the platform default name (libonnxruntime.so, libonnxruntime.dylib,
//     onnxruntime.dll) next to the executable
//   - the system loader's search path
//
// The loaded library must implement C API generation [APIVersion]. An engine
// from an older release line fails hard at first use; a newer engine is
// accepted with a logged warning.
//
// # Ownership
//
// Engine objects are wrapped in Go values carrying an explicit Close. Values
// are reference counted: Clone shares the underlying engine object, and the
// final Close releases it. Tensors created over Go memory keep that memory
// reachable for as long as the engine may read it.
package ort
