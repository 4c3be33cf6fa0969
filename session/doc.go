// Package session loads models and runs them.
//
// # Lifecycle
//
// An Environment comes first; the engine hosts every session inside one.
// Sessions are then opened from a file or from bytes, with Options
// controlling threading, graph optimization, profiling and execution
// providers. Input and output signatures are resolved once at open, so
// Inputs and Outputs are free to call. Close the sessions, then the
// environment.
//
// # Running
//
// Run binds named values to model inputs, executes the graph, and returns
// the outputs as owned values the caller closes. RunWithConfig narrows the
// computed outputs and tags the run. The engine call is synchronous and
// holds no locks here, so concurrent runs on one session are fine.
//
// # Metadata
//
// Metadata exposes what the model records about itself. Fields are fetched
// lazily; each accessor frees the engine's transfer buffer before it
// returns, and the handle itself is freed by Close.
package session
