// Package config loads simulator defaults from the environment and an
// optional .env file. Command-line flags override these values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/MJE43/casino-sim/internal/games"
	"github.com/MJE43/casino-sim/internal/sim"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when CASINO_ENV_FILE is unset
const DefaultEnvFile = ".env"

// Config holds every setting that can come from the environment
type Config struct {
	Game     string  `env:"CASINO_GAME" envDefault:"dice"`
	Trials   int     `env:"CASINO_TRIALS" envDefault:"10000"`
	Seed     uint64  `env:"CASINO_SEED" envDefault:"42"`
	Sides    int     `env:"CASINO_SIDES" envDefault:"6"`
	BetOn    int     `env:"CASINO_BET_ON" envDefault:"6"`
	Payout   float64 `env:"CASINO_PAYOUT" envDefault:"5.0"`
	DBPath   string  `env:"CASINO_DB"`
	RNG      string  `env:"CASINO_RNG" envDefault:"mt19937_64"`
	LogLevel string  `env:"CASINO_LOG_LEVEL" envDefault:"info"`
}

// Load reads the env file named by CASINO_ENV_FILE (default .env) if it
// exists, then parses the process environment. Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	envFile := os.Getenv("CASINO_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Sim returns the simulation settings
func (c Config) Sim() sim.Config {
	return sim.Config{
		Game:   c.Game,
		Source: c.RNG,
		Trials: c.Trials,
		Seed:   c.Seed,
		Params: games.Params{
			Dice: games.DiceParams{Sides: c.Sides, BetOn: c.BetOn, Payout: c.Payout},
		},
	}
}

// Level parses LogLevel ("debug", "info", "warn", "error")
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
