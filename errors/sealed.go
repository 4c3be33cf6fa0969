package errors

import (
	"sync"

	"github.com/wippyai/ort/api"
)

// sealedStore holds Go errors that travel through engine plumbing disguised
// as status handles. Real engine statuses are heap pointers and therefore
// even; sealed handles are odd, so the two never collide.
type sealedStore struct {
	mu       sync.Mutex
	entries  []sealedEntry
	freeList []int
}

type sealedEntry struct {
	err   error
	valid bool
}

var sealed sealedStore

// Seal stores err and returns an odd status handle standing in for it.
// The handle carries no meaning for the engine: it must come back through
// Reclaim or FromStatus exactly once and must never reach the engine's
// ReleaseStatus. Seal(nil) returns the zero status.
func Seal(err error) api.Status {
	if err == nil {
		return 0
	}

	sealed.mu.Lock()
	defer sealed.mu.Unlock()

	e := sealedEntry{err: err, valid: true}

	if n := len(sealed.freeList); n > 0 {
		idx := sealed.freeList[n-1]
		sealed.freeList = sealed.freeList[:n-1]
		sealed.entries[idx] = e
		return api.Status(idx*2 + 1)
	}

	sealed.entries = append(sealed.entries, e)
	return api.Status((len(sealed.entries)-1)*2 + 1)
}

// Borrow returns the error behind a sealed handle without consuming it.
func Borrow(s api.Status) (error, bool) {
	if !IsSealed(s) {
		return nil, false
	}

	sealed.mu.Lock()
	defer sealed.mu.Unlock()

	idx := int(s) / 2
	if idx >= len(sealed.entries) || !sealed.entries[idx].valid {
		return nil, false
	}
	return sealed.entries[idx].err, true
}

// Reclaim removes the error behind a sealed handle and returns it. The
// handle is dead afterwards.
func Reclaim(s api.Status) (error, bool) {
	if !IsSealed(s) {
		return nil, false
	}

	sealed.mu.Lock()
	defer sealed.mu.Unlock()

	idx := int(s) / 2
	if idx >= len(sealed.entries) || !sealed.entries[idx].valid {
		return nil, false
	}

	err := sealed.entries[idx].err
	sealed.entries[idx] = sealedEntry{}
	sealed.freeList = append(sealed.freeList, idx)
	return err, true
}

// IsSealed reports whether s is a sealed handle rather than an engine status.
func IsSealed(s api.Status) bool {
	return s&1 == 1
}
