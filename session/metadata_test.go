package session

import (
	goerrors "errors"
	"testing"
)

func TestMetadata(t *testing.T) {
	st := testStore()
	s := openSession(t, nil)

	md, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	fields := []struct {
		name string
		get  func() (string, error)
		want string
	}{
		{"producer", md.Producer, "pytorch"},
		{"graph name", md.GraphName, "classifier"},
		{"domain", md.Domain, "vision"},
		{"description", md.Description, "tiny image classifier"},
		{"graph description", md.GraphDescription, "conv stack"},
	}
	for _, f := range fields {
		got, err := f.get()
		if err != nil {
			t.Fatalf("%s: %v", f.name, err)
		}
		if got != f.want {
			t.Errorf("%s = %q, want %q", f.name, got, f.want)
		}
	}

	if v, err := md.Version(); err != nil || v != 7 {
		t.Errorf("version = %d, %v, want 7", v, err)
	}

	val, ok, err := md.Custom("author")
	if err != nil {
		t.Fatalf("Custom: %v", err)
	}
	if !ok || val != "wippy" {
		t.Errorf("author = %q, %v", val, ok)
	}
	if _, ok, err := md.Custom("missing"); err != nil || ok {
		t.Errorf("missing key = %v, %v, want absent", ok, err)
	}

	keys, err := md.CustomKeys()
	if err != nil {
		t.Fatalf("CustomKeys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "author" || keys[1] != "license" {
		t.Errorf("keys = %v", keys)
	}

	if err := md.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := md.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := md.Producer(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("Producer after close = %v, want ErrClosed", err)
	}
	if _, err := md.CustomKeys(); !goerrors.Is(err, ErrClosed) {
		t.Errorf("CustomKeys after close = %v, want ErrClosed", err)
	}

	if n := st.MetadataLeaks(); n != 0 {
		t.Errorf("metadata leaks = %d", n)
	}
	if n := st.OutstandingAllocations(); n != 0 {
		t.Errorf("outstanding allocations = %d", n)
	}
}

func TestMetadataOutlivesSession(t *testing.T) {
	testStore()
	s, err := Open(newEnv(t), "classifier.onnx", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	defer md.Close()
	s.Close()

	got, err := md.Producer()
	if err != nil {
		t.Fatalf("Producer after session close: %v", err)
	}
	if got != "pytorch" {
		t.Errorf("producer = %q", got)
	}
}
