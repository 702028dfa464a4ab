package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MJE43/casino-sim/internal/sim"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := cfg.Sim()
	want := sim.DefaultConfig()
	if got != want {
		t.Errorf("Sim() = %+v, want %+v", got, want)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
	if level, err := cfg.Level(); err != nil || level != slog.LevelInfo {
		t.Errorf("Level() = %v, %v", level, err)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"CASINO_TRIALS":    "500",
		"CASINO_SEED":      "18446744073709551615",
		"CASINO_SIDES":     "20",
		"CASINO_BET_ON":    "3",
		"CASINO_PAYOUT":    "19",
		"CASINO_DB":        "data/sim.db",
		"CASINO_RNG":       "pcg",
		"CASINO_LOG_LEVEL": "debug",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Trials != 500 || cfg.Seed != 18446744073709551615 || cfg.Sides != 20 || cfg.BetOn != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Payout != 19 || cfg.DBPath != "data/sim.db" || cfg.RNG != "pcg" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", level)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []map[string]string{
		{"CASINO_TRIALS": "many"},
		{"CASINO_SEED": "-1"},
		{"CASINO_PAYOUT": "five"},
	}

	for _, environ := range tests {
		if _, err := Parse(environ); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", environ)
		}
	}

	cfg := Config{LogLevel: "loud"}
	if _, err := cfg.Level(); err == nil {
		t.Error("Level() accepted an invalid level")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "casino.env")
	if err := os.WriteFile(envFile, []byte("CASINO_TRIALS=777\nCASINO_SIDES=8\n"), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv("CASINO_ENV_FILE", envFile)
	// Set explicitly so the process environment wins over the file
	t.Setenv("CASINO_SIDES", "12")
	t.Cleanup(func() { os.Unsetenv("CASINO_TRIALS") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trials != 777 {
		t.Errorf("Trials = %d, want 777 from env file", cfg.Trials)
	}
	if cfg.Sides != 12 {
		t.Errorf("Sides = %d, want 12 from process environment", cfg.Sides)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("CASINO_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err != nil {
		t.Errorf("Load with missing env file failed: %v", err)
	}
}
