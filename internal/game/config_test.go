package game

import (
	"flag"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("dungeonkey", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.UI != "plain" || cfg.Store != "json" || cfg.SavePath != "heroes.json" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Slot != "default" || cfg.DBPath != "dungeonkey.db" || cfg.Seed != 0 || cfg.Telemetry {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Level() != logrus.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("DUNGEONKEY_SEED", "42")
	t.Setenv("DUNGEONKEY_STORE", "sqlite")
	t.Setenv("DUNGEONKEY_LOG_LEVEL", "debug")

	cfg, err := ParseConfig(newFlagSet(), []string{"-store", "json", "-slot", "second"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42 from env", cfg.Seed)
	}
	if cfg.Store != "json" {
		t.Errorf("Store = %q, want flag to win over env", cfg.Store)
	}
	if cfg.Slot != "second" {
		t.Errorf("Slot = %q, want second", cfg.Slot)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestParseConfigRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"ui", []string{"-ui", "web"}},
		{"store", []string{"-store", "redis"}},
		{"log level", []string{"-log-level", "loud"}},
		{"unknown flag", []string{"-colour"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(newFlagSet(), tt.args); err == nil {
				t.Error("ParseConfig() error = nil, want an error")
			}
		})
	}
}

func TestNewRandIsSeeded(t *testing.T) {
	cfg := Config{Seed: 9}
	a, seed, err := cfg.NewRand()
	if err != nil {
		t.Fatalf("NewRand() error = %v", err)
	}
	if seed != 9 {
		t.Errorf("seed = %d, want 9", seed)
	}
	b, _, _ := cfg.NewRand()
	for i := 0; i < 5; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}
