package ort

import "github.com/caarlos0/env/v11"

// Config carries process-level settings read from the environment.
type Config struct {
	// DylibPath overrides where the runtime library is loaded from.
	// Relative paths are tried next to the executable first.
	DylibPath string `env:"ORT_DYLIB_PATH"`

	// LogLevel is the default engine log severity for new environments:
	// verbose, info, warning, error or fatal.
	LogLevel string `env:"ORT_LOG_LEVEL" envDefault:"warning"`

	// Telemetry enables the engine's platform telemetry events.
	Telemetry bool `env:"ORT_TELEMETRY"`
}

// ConfigFromEnv populates a Config from process environment variables.
func ConfigFromEnv() (Config, error) {
	return env.ParseAs[Config]()
}
