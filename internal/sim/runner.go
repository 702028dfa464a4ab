package sim

import (
	"errors"
	"fmt"

	"github.com/MJE43/casino-sim/internal/engine"
	"github.com/MJE43/casino-sim/internal/games"
	"github.com/google/uuid"
)

// Config describes one simulation run
type Config struct {
	Game   string       `json:"game"`
	Source string       `json:"source"`
	Trials int          `json:"trials"`
	Seed   uint64       `json:"seed"`
	Params games.Params `json:"params"`
}

// DefaultConfig returns 10000 trials of the default dice bet with seed 42
func DefaultConfig() Config {
	return Config{
		Game:   "dice",
		Source: engine.SourceMT64,
		Trials: 10000,
		Seed:   engine.DefaultSeed,
		Params: games.Params{Dice: games.DefaultDiceParams()},
	}
}

// Validate checks the config without running anything.
func (c Config) Validate() error {
	_, _, err := c.build()
	return err
}

func (c Config) build() (games.Game, engine.RandomSource, error) {
	game, err := games.NewGame(c.Game, c.Params)
	if errors.Is(err, games.ErrGameNotFound) {
		return nil, nil, &ConfigError{Field: "game", Err: err}
	}
	if err != nil {
		return nil, nil, &ConfigError{Field: c.Game + " params", Err: err}
	}
	if c.Trials <= 0 {
		return nil, nil, &ConfigError{Field: "trials", Err: fmt.Errorf("%w, got %d", ErrInvalidTrials, c.Trials)}
	}
	src, err := engine.NewSource(c.Source, c.Seed)
	if err != nil {
		return nil, nil, &ConfigError{Field: "rng", Err: err}
	}
	return game, src, nil
}

// Tally accumulates exact counts over a run
type Tally struct {
	Trials    int
	Hits      int
	ProfitSum float64
}

// HitRate returns hits / trials
func (t Tally) HitRate() float64 {
	if t.Trials == 0 {
		return 0
	}
	return float64(t.Hits) / float64(t.Trials)
}

// EV returns the mean profit per trial
func (t Tally) EV() float64 {
	if t.Trials == 0 {
		return 0
	}
	return t.ProfitSum / float64(t.Trials)
}

// Aggregate plays trials sequentially against one source. Trials must be
// positive; callers validate through Config first.
func Aggregate(game games.Game, src engine.RandomSource, trials int) Tally {
	tally := Tally{Trials: trials}
	for i := 0; i < trials; i++ {
		out := game.Play(src)
		if out.Win {
			tally.Hits++
		}
		tally.ProfitSum += out.Profit
	}
	return tally
}

// Summary is the immutable result of a run
type Summary struct {
	RunID         string  `json:"run_id"`
	Game          string  `json:"game"`
	Params        string  `json:"params"`
	Seed          uint64  `json:"seed"`
	Source        string  `json:"source"`
	Trials        int     `json:"trials"`
	Hits          int     `json:"hits"`
	HitRate       float64 `json:"hit_rate"`
	ExpectedValue float64 `json:"ev"`
	EngineVersion string  `json:"engine_version"`
}

// Run validates cfg, plays every trial and summarises the result
func Run(cfg Config) (*Summary, error) {
	if cfg.Source == "" {
		cfg.Source = engine.SourceMT64
	}

	game, src, err := cfg.build()
	if err != nil {
		return nil, err
	}

	tally := Aggregate(game, src, cfg.Trials)

	return &Summary{
		RunID:         uuid.New().String(),
		Game:          game.Spec().ID,
		Params:        EncodeParams(game, cfg.Seed, cfg.Source),
		Seed:          cfg.Seed,
		Source:        cfg.Source,
		Trials:        tally.Trials,
		Hits:          tally.Hits,
		HitRate:       tally.HitRate(),
		ExpectedValue: tally.EV(),
		EngineVersion: engine.EngineVersion,
	}, nil
}

// EncodeParams appends the seed and source kind to the game's own params
func EncodeParams(game games.Game, seed uint64, source string) string {
	return fmt.Sprintf("%s,seed=%d,rng=%s", game.Encode(), seed, source)
}
