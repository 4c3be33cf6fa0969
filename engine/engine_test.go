package engine

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/ort"
	"github.com/wippyai/ort/api"
)

func TestParseMinor(t *testing.T) {
	tests := []struct {
		version string
		minor   int
		ok      bool
	}{
		{"1.23.0", 23, true},
		{"1.23.1", 23, true},
		{"1.9.0", 9, true},
		{"2.0.0", 0, true},
		{"1.x.0", 0, false},
		{"nightly", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			minor, ok := parseMinor(tt.version)
			if ok != tt.ok {
				t.Fatalf("parseMinor(%q) ok = %v, want %v", tt.version, ok, tt.ok)
			}
			if ok && minor != tt.minor {
				t.Errorf("parseMinor(%q) = %d, want %d", tt.version, minor, tt.minor)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"matching release line", "1.23.0", false},
		{"patch release", "1.23.2", false},
		{"newer release line", "1.24.0", false},
		{"older release line", "1.22.0", true},
		{"much older", "1.9.1", true},
		{"unparseable", "nightly-build", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkVersion(tt.version)
			if tt.wantErr && err == nil {
				t.Fatalf("checkVersion(%q) = nil, want error", tt.version)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("checkVersion(%q) = %v, want nil", tt.version, err)
			}
		})
	}
}

func TestCheckVersion_NewerWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	if err := checkVersion("1.99.0"); err != nil {
		t.Fatalf("checkVersion returned error for newer runtime: %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d entries", len(entries))
	}
	if !strings.Contains(entries[0].Message, "newer") {
		t.Errorf("warning message %q does not mention a newer runtime", entries[0].Message)
	}

	logs.TakeAll()
	if err := checkVersion("1.23.0"); err != nil {
		t.Fatalf("checkVersion returned error for matching runtime: %v", err)
	}
	if n := len(logs.All()); n != 0 {
		t.Errorf("matching runtime logged %d warnings, want none", n)
	}
}

func TestLibraryPath(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		t.Setenv("ORT_DYLIB_PATH", "/opt/ort/libonnxruntime.so")
		if got := libraryPath(); got != "/opt/ort/libonnxruntime.so" {
			t.Errorf("libraryPath() = %q, want override", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("ORT_DYLIB_PATH", "")
		got := libraryPath()
		if got != defaultLibraryName() {
			t.Errorf("libraryPath() = %q, want %q", got, defaultLibraryName())
		}
		if !strings.Contains(got, "onnxruntime") {
			t.Errorf("default library name %q does not name the runtime", got)
		}
	})
}

func TestResolveLibraryPath(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "usr", "lib", "libonnxruntime.so")
	if got := resolveLibraryPath(abs); got != abs {
		t.Errorf("absolute path changed: %q", got)
	}

	// A relative name with no copy next to the executable is left for the
	// system loader's search path.
	if got := resolveLibraryPath("libdoesnotexist-ort-test.so"); got != "libdoesnotexist-ort-test.so" {
		t.Errorf("relative path changed: %q", got)
	}
}

// TestInstallLifecycle walks the full install contract in order, since the
// table is process-global state.
func TestInstallLifecycle(t *testing.T) {
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Install(nil) did not panic")
			}
		}()
		Install(nil)
	}()

	fake := &api.Table{
		GetErrorCode: func(api.Status) api.ErrorCode { return api.ErrorOK },
	}
	Install(fake)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("second Install did not panic")
			}
		}()
		Install(&api.Table{})
	}()

	if got := Table(); got != fake {
		t.Fatal("Table() did not return the installed table")
	}
	if v := Version(); v != "" {
		t.Errorf("Version() = %q for installed table, want empty", v)
	}
	if b := BuildInfo(); b != "" {
		t.Errorf("BuildInfo() = %q for installed table, want empty", b)
	}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Install after resolve did not panic")
			}
		}()
		Install(&api.Table{})
	}()
}

func TestAPIVersionMatchesReleaseLine(t *testing.T) {
	if int(ort.APIVersion) != ort.RuntimeMinor {
		t.Errorf("API generation %d does not match release line 1.%d", ort.APIVersion, ort.RuntimeMinor)
	}
}
