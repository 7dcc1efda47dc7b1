package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config holds game configuration options.
type Config struct {
	// Seed for the hazard shuffle. A seed of 0 means a random seed is drawn.
	Seed int64 `env:"DUNGEONKEY_SEED"`

	UI       string `env:"DUNGEONKEY_UI" envDefault:"plain"`          // plain | console
	Store    string `env:"DUNGEONKEY_STORE" envDefault:"json"`        // json | sqlite
	SavePath string `env:"DUNGEONKEY_SAVE_PATH" envDefault:"heroes.json"`
	DBPath   string `env:"DUNGEONKEY_DB_PATH" envDefault:"dungeonkey.db"`
	Slot     string `env:"DUNGEONKEY_SAVE_SLOT" envDefault:"default"`
	LogLevel string `env:"DUNGEONKEY_LOG_LEVEL" envDefault:"info"`

	Telemetry        bool   `env:"DUNGEONKEY_TELEMETRY" envDefault:"false"`
	HoneycombKey     string `env:"HONEYCOMB_DUNGEONKEY_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_DUNGEONKEY_DATASET"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Hazard shuffle seed (0 = random)")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Interface: plain or console")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Save backend: json or sqlite")
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "JSON save file path")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "SQLite save slot")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "Export traces over OTLP")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated options.
func (c Config) Validate() error {
	switch c.UI {
	case "plain", "console":
	default:
		return fmt.Errorf("unknown ui %q (want plain or console)", c.UI)
	}
	switch c.Store {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown store %q (want json or sqlite)", c.Store)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the configured logrus level, defaulting to info.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewRand returns the random source for hazards and the seed it was built
// from. A zero Seed is replaced by one read from crypto/rand.
func (c Config) NewRand() (*rand.Rand, int64, error) {
	seed := c.Seed
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, 0, fmt.Errorf("read random seed: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
