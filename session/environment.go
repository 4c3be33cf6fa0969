package session

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/errors"
)

// LogLevel selects an engine log severity. The zero value keeps the
// default for the context it is used in: warning for environments, the
// environment's level for sessions.
type LogLevel int32

const (
	LogDefault LogLevel = iota
	LogVerbose
	LogInfo
	LogWarning
	LogError
	LogFatal
)

// engine maps l to the C API severity scale. ok is false for LogDefault.
func (l LogLevel) engine() (api.LoggingLevel, bool) {
	switch l {
	case LogVerbose:
		return api.LogVerbose, true
	case LogInfo:
		return api.LogInfo, true
	case LogWarning:
		return api.LogWarning, true
	case LogError:
		return api.LogError, true
	case LogFatal:
		return api.LogFatal, true
	}
	return 0, false
}

func (l LogLevel) String() string {
	switch l {
	case LogDefault:
		return "default"
	case LogVerbose:
		return "verbose"
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogFatal:
		return "fatal"
	}
	return "unknown"
}

// ParseLevel converts a level name such as "warning" to a LogLevel. The
// empty string parses to LogDefault.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return LogDefault, nil
	case "verbose":
		return LogVerbose, nil
	case "info":
		return LogInfo, nil
	case "warning", "warn":
		return LogWarning, nil
	case "error":
		return LogError, nil
	case "fatal":
		return LogFatal, nil
	}
	return LogDefault, errors.InvalidArgument("unknown log level %q", s)
}

// EnvConfig holds configuration for environment creation.
type EnvConfig struct {
	// Name tags the engine's log lines for this environment.
	// Empty uses "ort".
	Name string

	// Level is the engine log severity. LogDefault means warning.
	Level LogLevel

	// Telemetry enables the engine's platform telemetry events.
	Telemetry bool
}

// Environment is the engine environment sessions run inside. The engine
// keeps one per process behind the scenes, so create it once and close it
// after every session is closed.
type Environment struct {
	h      api.Env
	closed atomic.Bool
}

// NewEnvironment creates an environment. cfg may be nil for defaults.
func NewEnvironment(cfg *EnvConfig) (*Environment, error) {
	name := "ort"
	level := api.LogWarning
	telemetry := false
	if cfg != nil {
		if cfg.Name != "" {
			name = cfg.Name
		}
		if lvl, ok := cfg.Level.engine(); ok {
			level = lvl
		}
		telemetry = cfg.Telemetry
	}

	t := engine.Table()
	var h api.Env
	if err := errors.FromStatus(t.CreateEnv(level, api.CString(name), &h)); err != nil {
		return nil, err
	}

	var st api.Status
	if telemetry {
		st = t.EnableTelemetryEvents(h)
	} else {
		st = t.DisableTelemetryEvents(h)
	}
	if err := errors.FromStatus(st); err != nil {
		t.ReleaseEnv(h)
		return nil, err
	}

	Logger().Debug("environment created",
		zap.String("name", name),
		zap.Bool("telemetry", telemetry))
	return &Environment{h: h}, nil
}

// Handle exposes the raw environment handle.
func (e *Environment) Handle() (api.Env, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	return e.h, nil
}

// UpdateLogLevel changes the environment's log severity. LogDefault resets
// it to warning.
func (e *Environment) UpdateLogLevel(l LogLevel) error {
	if e.closed.Load() {
		return ErrClosed
	}
	lvl, ok := l.engine()
	if !ok {
		lvl = api.LogWarning
	}
	return errors.FromStatus(engine.Table().UpdateEnvWithCustomLogLevel(e.h, lvl))
}

// SetTelemetry toggles the engine's platform telemetry events.
func (e *Environment) SetTelemetry(on bool) error {
	if e.closed.Load() {
		return ErrClosed
	}
	t := engine.Table()
	if on {
		return errors.FromStatus(t.EnableTelemetryEvents(e.h))
	}
	return errors.FromStatus(t.DisableTelemetryEvents(e.h))
}

// Close releases the environment. Further calls do nothing.
func (e *Environment) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	engine.Table().ReleaseEnv(e.h)
	return nil
}
