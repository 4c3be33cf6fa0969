package api

import (
	"testing"
	"unsafe"
)

func TestGoStringNil(t *testing.T) {
	if s := GoString(nil); s != "" {
		t.Fatalf("Expected empty string for nil pointer, got %q", s)
	}
}

func TestCStringRoundTrip(t *testing.T) {
	cases := []string{"", "input", "日本語ラベル", "with space"}
	for _, want := range cases {
		p := CString(want)
		if got := GoStringPtr(p); got != want {
			t.Fatalf("Round trip of %q produced %q", want, got)
		}
	}
}

func TestCStringTerminated(t *testing.T) {
	p := CString("ab")
	if *(*byte)(unsafe.Add(unsafe.Pointer(p), 2)) != 0 {
		t.Fatal("Expected NUL terminator after string bytes")
	}
}

func TestCStrings(t *testing.T) {
	ptrs := CStrings([]string{"x", "longer-name"})
	if len(ptrs) != 2 {
		t.Fatalf("Expected 2 pointers, got %d", len(ptrs))
	}
	if got := GoStringPtr(ptrs[1]); got != "longer-name" {
		t.Fatalf("Second entry decoded to %q", got)
	}
}
