package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scale != 2 || cfg.LogLevel != "info" || cfg.Headless || cfg.Fullscreen {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"--rom", "roms/invaders.rom", "--scale", "4", "--fullscreen", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.ROMPath != "roms/invaders.rom" || cfg.Scale != 4 || !cfg.Fullscreen || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"--not-a-flag"}); err == nil {
		t.Error("Parse with unknown flag: want error, got nil")
	}
}

func TestEnvOverridesDefaultButNotFlag(t *testing.T) {
	t.Setenv("INVADERS8080_SCALE", "3")
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scale != 3 {
		t.Errorf("Scale = %d, want 3 from env", cfg.Scale)
	}

	cfg, err = Parse([]string{"--scale", "5"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scale != 5 {
		t.Errorf("Scale = %d, want 5 from flag overriding env", cfg.Scale)
	}
}
