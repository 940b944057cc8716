package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()

	if sc.System != "quadratic" {
		t.Errorf("expected system quadratic, got %s", sc.System)
	}
	if sc.Dt0 <= 0 {
		t.Error("dt0 should be positive")
	}
	if sc.Tmax <= 0 {
		t.Error("tmax should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	sc := GetPreset("pendulum", "small_angle")
	if sc == nil {
		t.Fatal("expected preset, got nil")
	}
	if sc.InitState.Theta0 != 0.2 {
		t.Errorf("expected theta0 0.2, got %f", sc.InitState.Theta0)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if sc := GetPreset("pendulum", "nonexistent"); sc != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if sc := GetPreset("nonexistent", "small_angle"); sc != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("pendulum"); len(presets) == 0 {
		t.Error("expected presets for pendulum")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestGetInitState(t *testing.T) {
	tests := []struct {
		system   string
		expected int
	}{
		{"quadratic", 1},
		{"constant_drift", 1},
		{"pendulum", 2},
		{"complex_oscillator", 2},
		{"kepler", 4},
	}

	for _, tt := range tests {
		sc := DefaultScenario()
		sc.System = tt.system
		state := sc.GetInitState()
		if len(state) != tt.expected {
			t.Errorf("system %s: expected %d states, got %d", tt.system, tt.expected, len(state))
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sc := GetPreset("kepler", "circular")
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	if err := Save(path, sc); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if got.System != sc.System || got.InitState.PosX != sc.InitState.PosX {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, sc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
