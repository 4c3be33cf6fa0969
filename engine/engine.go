package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/ort"
	"github.com/wippyai/ort/api"
)

var (
	mu          sync.Mutex
	installed   *api.Table
	resolveOnce sync.Once
	active      *api.Table
	libPath     string
	libVersion  string
)

// Install routes the process to t instead of loading the runtime library.
// It is intended for alternative backends that implement the C API in Go,
// and for tests. Install panics if the table was already resolved or if a
// table was already installed; there is no uninstall.
func Install(t *api.Table) {
	if t == nil {
		panic("engine: Install called with nil table")
	}
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		panic("engine: Install called after the API table was resolved")
	}
	if installed != nil {
		panic("engine: an API table is already installed")
	}
	installed = t
}

// Table returns the process-wide API table, resolving it on first use.
// Resolution failures panic; see the package documentation.
func Table() *api.Table {
	resolveOnce.Do(resolve)
	return active
}

// Version returns the version string reported by the loaded library,
// forcing resolution if it has not happened yet. It is empty when an
// installed table is active.
func Version() string {
	Table()
	return libVersion
}

// BuildInfo returns the engine's build banner, or an empty string when the
// active table does not provide one.
func BuildInfo() string {
	t := Table()
	if t.GetBuildInfoString == nil {
		return ""
	}
	return api.GoString(t.GetBuildInfoString())
}

// Path returns the library path resolution would use, or the path that was
// actually loaded once resolution has happened.
func Path() string {
	mu.Lock()
	loaded := libPath
	mu.Unlock()
	if loaded != "" {
		return loaded
	}
	return resolveLibraryPath(libraryPath())
}

func resolve() {
	mu.Lock()
	defer mu.Unlock()

	if installed != nil {
		active = installed
		Logger().Info("using installed api table")
		return
	}

	path := resolveLibraryPath(libraryPath())
	handle, err := openLibrary(path)
	if err != nil {
		panic(fmt.Sprintf("ort: load runtime library %q: %v (set ORT_DYLIB_PATH to an ONNX Runtime shared library)", path, err))
	}
	libPath = path

	var getApiBase func() *apiBase
	purego.RegisterLibFunc(&getApiBase, handle, "OrtGetApiBase")
	base := getApiBase()
	if base == nil {
		panic(fmt.Sprintf("ort: %q: OrtGetApiBase returned nil", path))
	}

	var versionString func() unsafe.Pointer
	purego.RegisterFunc(&versionString, base.GetVersionString)
	libVersion = api.GoString(versionString())
	if err := checkVersion(libVersion); err != nil {
		panic(fmt.Sprintf("ort: %q: %v", path, err))
	}

	var getAPI func(uint32) unsafe.Pointer
	purego.RegisterFunc(&getAPI, base.GetApi)
	raw := getAPI(ort.APIVersion)
	if raw == nil {
		panic(fmt.Sprintf("ort: %q (version %s) does not provide C API generation %d", path, libVersion, ort.APIVersion))
	}

	active = bind((*rawAPI)(raw))
	Logger().Info("resolved api table",
		zap.String("path", path),
		zap.String("version", libVersion))
}

// checkVersion enforces the release line contract. An older engine cannot
// provide the requested API generation, so it is rejected. A newer engine is
// accepted with a warning since entries this module binds are stable.
func checkVersion(version string) error {
	minor, ok := parseMinor(version)
	if !ok {
		Logger().Warn("unrecognized runtime version string", zap.String("version", version))
		return nil
	}
	switch {
	case minor < ort.RuntimeMinor:
		return fmt.Errorf("runtime version %q is older than the supported 1.%d release line", version, ort.RuntimeMinor)
	case minor > ort.RuntimeMinor:
		Logger().Warn("runtime is newer than the supported release line",
			zap.String("version", version),
			zap.Int("supported_minor", ort.RuntimeMinor))
	}
	return nil
}

func parseMinor(version string) (int, bool) {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func libraryPath() string {
	cfg, err := ort.ConfigFromEnv()
	if err != nil {
		Logger().Warn("parse environment config", zap.Error(err))
	}
	if cfg.DylibPath != "" {
		return cfg.DylibPath
	}
	return defaultLibraryName()
}

func defaultLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// resolveLibraryPath tries a relative path next to the executable before
// handing it to the system loader's search path.
func resolveLibraryPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return p
	}
	cand := filepath.Join(filepath.Dir(exe), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}
