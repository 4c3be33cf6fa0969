package session

import (
	"testing"

	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/providers"
)

func TestOpenDefaultOptions(t *testing.T) {
	st := testStore()
	openSession(t, nil)

	cfg, ok := st.LastSessionConfig()
	if !ok {
		t.Fatal("no session recorded")
	}
	if !cfg.MemPattern {
		t.Error("mem pattern off without being asked")
	}
	if !cfg.CPUArena {
		t.Error("cpu arena off without being asked")
	}
	if cfg.LogSeverity != -1 {
		t.Errorf("log severity = %d, want untouched", cfg.LogSeverity)
	}
	if cfg.IntraThreads != 0 || cfg.InterThreads != 0 {
		t.Errorf("thread caps = %d, %d, want untouched", cfg.IntraThreads, cfg.InterThreads)
	}
	if cfg.Profiling {
		t.Error("profiling on without being asked")
	}
	if len(cfg.Providers) != 0 {
		t.Errorf("providers = %v, want none", cfg.Providers)
	}
}

func TestOpenFullOptions(t *testing.T) {
	st := testStore()
	openSession(t, &Options{
		IntraThreads:      4,
		InterThreads:      2,
		Execution:         ExecParallel,
		Optimization:      OptExtended,
		LogSeverity:       LogError,
		DisableMemPattern: true,
		DisableCPUArena:   true,
		Deterministic:     true,
		ProfilePrefix:     "bench",
		Entries:           map[string]string{"session.intra_op.allow_spinning": "0"},
		DimOverrides:      map[string]int64{"tokens": 128},
		Providers: []providers.Provider{
			providers.WebGPU{Validation: providers.ValidationBasic},
		},
	})

	cfg, ok := st.LastSessionConfig()
	if !ok {
		t.Fatal("no session recorded")
	}
	if cfg.IntraThreads != 4 || cfg.InterThreads != 2 {
		t.Errorf("thread caps = %d, %d", cfg.IntraThreads, cfg.InterThreads)
	}
	if cfg.ExecMode != 1 {
		t.Errorf("exec mode = %d, want 1", cfg.ExecMode)
	}
	if cfg.OptLevel != 2 {
		t.Errorf("opt level = %d, want 2", cfg.OptLevel)
	}
	if cfg.LogSeverity != int32(api.LogError) {
		t.Errorf("log severity = %d, want %d", cfg.LogSeverity, int32(api.LogError))
	}
	if cfg.MemPattern {
		t.Error("mem pattern still on")
	}
	if cfg.CPUArena {
		t.Error("cpu arena still on")
	}
	if !cfg.Deterministic {
		t.Error("deterministic not set")
	}
	if !cfg.Profiling || cfg.ProfilePrefix != "bench" {
		t.Errorf("profiling = %v %q", cfg.Profiling, cfg.ProfilePrefix)
	}
	if cfg.Config["session.intra_op.allow_spinning"] != "0" {
		t.Errorf("config entries = %v", cfg.Config)
	}
	if cfg.DimOverrides["tokens"] != 128 {
		t.Errorf("dim overrides = %v", cfg.DimOverrides)
	}
	if len(cfg.Providers) != 1 {
		t.Fatalf("providers = %v", cfg.Providers)
	}
	if cfg.Providers[0].Name != "WebGPU" {
		t.Errorf("provider name = %q", cfg.Providers[0].Name)
	}
	if cfg.Providers[0].Options["WebGPU:validationMode"] != "basic" {
		t.Errorf("provider options = %v", cfg.Providers[0].Options)
	}
}

func TestProviderOrder(t *testing.T) {
	st := testStore()
	openSession(t, &Options{
		Providers: []providers.Provider{
			providers.CUDA{DeviceID: 1},
			providers.WebGPU{},
		},
	})

	cfg, ok := st.LastSessionConfig()
	if !ok {
		t.Fatal("no session recorded")
	}
	if len(cfg.Providers) != 2 {
		t.Fatalf("providers = %v", cfg.Providers)
	}
	if cfg.Providers[0].Name != "CUDA" || cfg.Providers[1].Name != "WebGPU" {
		t.Errorf("provider order = %q, %q", cfg.Providers[0].Name, cfg.Providers[1].Name)
	}
	if cfg.Providers[0].Options["device_id"] != "1" {
		t.Errorf("cuda options = %v", cfg.Providers[0].Options)
	}
}

func TestExecutionModeMapping(t *testing.T) {
	tests := []struct {
		in   ExecutionMode
		want int32
		set  bool
	}{
		{ExecDefault, 0, false},
		{ExecSequential, 0, true},
		{ExecParallel, 1, true},
	}
	for _, tt := range tests {
		got, ok := tt.in.engine()
		if ok != tt.set || got != tt.want {
			t.Errorf("%d.engine() = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.set)
		}
	}
}

func TestOptimizationLevelMapping(t *testing.T) {
	tests := []struct {
		in   OptimizationLevel
		want int32
		set  bool
	}{
		{OptDefault, 0, false},
		{OptDisable, 0, true},
		{OptBasic, 1, true},
		{OptExtended, 2, true},
		{OptAll, 99, true},
	}
	for _, tt := range tests {
		got, ok := tt.in.engine()
		if ok != tt.set || got != tt.want {
			t.Errorf("%d.engine() = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.set)
		}
	}
}
