package ort

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t, "ORT_DYLIB_PATH", "ORT_LOG_LEVEL", "ORT_TELEMETRY")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DylibPath != "" {
		t.Errorf("DylibPath = %q, want empty", cfg.DylibPath)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("LogLevel = %q, want warning", cfg.LogLevel)
	}
	if cfg.Telemetry {
		t.Error("Telemetry = true, want false")
	}
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("ORT_DYLIB_PATH", "/opt/ort/libonnxruntime.so")
	t.Setenv("ORT_LOG_LEVEL", "error")
	t.Setenv("ORT_TELEMETRY", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DylibPath != "/opt/ort/libonnxruntime.so" {
		t.Errorf("DylibPath = %q", cfg.DylibPath)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
	if !cfg.Telemetry {
		t.Error("Telemetry = false, want true")
	}
}

func TestConfigBadTelemetry(t *testing.T) {
	t.Setenv("ORT_TELEMETRY", "sometimes")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for non-boolean ORT_TELEMETRY")
	}
}
