package errors

import (
	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
)

// FromStatus converts a status into a Go error, consuming the handle. The
// zero status is success. Sealed handles give back the original Go error;
// engine statuses are copied into an *Error and released.
func FromStatus(s api.Status) error {
	if s == 0 {
		return nil
	}
	if err, ok := Reclaim(s); ok {
		return err
	}

	t := engine.Table()
	code := t.GetErrorCode(s)
	message := api.GoString(t.GetErrorMessage(s))
	t.ReleaseStatus(s)
	return &Error{Code: code, Message: message}
}

// ToStatus converts a Go error into a status handle for code that speaks in
// statuses. A nil error is the zero status; anything else is sealed and must
// be unsealed on the way back out.
func ToStatus(err error) api.Status {
	if err == nil {
		return 0
	}
	return Seal(err)
}
