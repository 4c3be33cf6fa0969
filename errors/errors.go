package errors

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/wippyai/ort/api"
)

// Error is the structured error type used throughout the module. Code
// carries the engine's error category; Message is human-readable detail.
type Error struct {
	Code    api.ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Code.String())
	b.WriteByte(']')

	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two errors match when their
// codes match, so callers can test categories with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code api.ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code api.ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code api.ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Convenience constructors for common error patterns

// InvalidArgument creates an invalid argument error.
func InvalidArgument(format string, args ...any) *Error {
	return Newf(api.ErrorInvalidArgument, format, args...)
}

// Unsupported creates a not implemented error.
func Unsupported(format string, args ...any) *Error {
	return Newf(api.ErrorNotImplemented, format, args...)
}

// Runtime creates a runtime exception error.
func Runtime(format string, args ...any) *Error {
	return Newf(api.ErrorRuntimeException, format, args...)
}

// NoSuchFile creates a missing file error.
func NoSuchFile(path string) *Error {
	return Newf(api.ErrorNoSuchFile, "no such file: %s", path)
}

// NonNull converts an unexpectedly nil out-pointer from the named entry
// point into an error. The engine hands results back through out-pointers,
// and a nil one after a success status is an engine defect, not a caller
// mistake.
func NonNull(p unsafe.Pointer, entryPoint string) error {
	if p == nil {
		return Newf(api.ErrorFail, "%s returned a null pointer", entryPoint)
	}
	return nil
}
