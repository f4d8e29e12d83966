package config

import (
	"io"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GAME_SEED", "WEAPON_POWER_UP_EVERY", "PLACEMENT_MAX_ATTEMPTS",
		"FRAGMENT_MIN_PLAYER_DISTANCE", "AUTOPILOT", "LOG_LEVEL", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults %+v", s, DefaultSettings())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GAME_SEED", "42")
	t.Setenv("WEAPON_POWER_UP_EVERY", "0")
	t.Setenv("PLACEMENT_MAX_ATTEMPTS", "5")
	t.Setenv("FRAGMENT_MIN_PLAYER_DISTANCE", "12.5")
	t.Setenv("AUTOPILOT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Seed != 42 || s.WeaponPowerUpEvery != 0 || s.PlacementMaxAttempts != 5 ||
		s.FragmentMinPlayerDistance != 12.5 || !s.Autopilot || s.LogLevel != "debug" {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoadReportsEveryBadValue(t *testing.T) {
	t.Setenv("GAME_SEED", "-1")
	t.Setenv("PLACEMENT_MAX_ATTEMPTS", "0")
	t.Setenv("AUTOPILOT", "maybe")

	s, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if s.PlacementMaxAttempts != DefaultPlacementMaxAttempts {
		t.Errorf("PlacementMaxAttempts = %d, want default", s.PlacementMaxAttempts)
	}
	if s.Autopilot {
		t.Error("Autopilot = true after parse failure")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(io.Discard, "warn"); err != nil {
		t.Errorf("NewLogger(warn) error = %v", err)
	}
	if _, err := NewLogger(io.Discard, "loud"); err == nil {
		t.Error("NewLogger(loud) error = nil, want error")
	}
}
