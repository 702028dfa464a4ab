package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MJE43/casino-sim/internal/config"
	"github.com/MJE43/casino-sim/internal/engine"
	"github.com/MJE43/casino-sim/internal/games"
	"github.com/MJE43/casino-sim/internal/sim"
	"github.com/MJE43/casino-sim/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

type runOptions struct {
	game   string
	rng    string
	trials int
	seed   uint64
	sides  int
	betOn  int
	payout float64
	dbPath string
}

func newRunOptions(cfg config.Config) *runOptions {
	s := cfg.Sim()
	return &runOptions{
		game:   s.Game,
		rng:    s.Source,
		trials: s.Trials,
		seed:   s.Seed,
		sides:  s.Params.Dice.Sides,
		betOn:  s.Params.Dice.BetOn,
		payout: s.Params.Dice.Payout,
		dbPath: cfg.DBPath,
	}
}

// bindRunFlags registers simulation flags; current option values are the defaults
func bindRunFlags(fs *pflag.FlagSet, o *runOptions) {
	fs.StringVar(&o.game, "game", o.game, "game to simulate (dice)")
	fs.IntVar(&o.trials, "trials", o.trials, "number of trials (> 0)")
	fs.Uint64Var(&o.seed, "seed", o.seed, "random seed")
	fs.IntVar(&o.sides, "sides", o.sides, "number of die faces (>= 2)")
	fs.IntVar(&o.betOn, "bet-on", o.betOn, "face to bet on (1..sides)")
	fs.Float64Var(&o.payout, "payout", o.payout, "profit paid on a hit; a miss loses 1")
	fs.StringVar(&o.dbPath, "db", o.dbPath, "SQLite database to append the run summary to (optional)")
	fs.StringVar(&o.rng, "rng", o.rng, fmt.Sprintf("random source %v", engine.ListSources()))
}

func (o *runOptions) simConfig() sim.Config {
	return sim.Config{
		Game:   o.game,
		Source: o.rng,
		Trials: o.trials,
		Seed:   o.seed,
		Params: games.Params{
			Dice: games.DiceParams{Sides: o.sides, BetOn: o.betOn, Payout: o.payout},
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	opts := newRunOptions(a.cfg)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print hit rate and EV",
		Example: `  casino run --trials 120000 --seed 7
  casino run --sides 20 --bet-on 1 --payout 19 --db data/sim.db`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulation(cmd.Context(), opts)
		},
	}
	bindRunFlags(cmd.Flags(), opts)
	return cmd
}

// runSimulation validates, simulates, reports and then persists. The report
// is written before the store is touched so a store failure never hides the
// computed statistics; the failure is still returned.
func (a *app) runSimulation(ctx context.Context, opts *runOptions) (err error) {
	cfg := opts.simConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger.Debug("starting run",
		"game", cfg.Game, "trials", cfg.Trials, "seed", cfg.Seed, "rng", cfg.Source)

	start := time.Now()
	summary, err := sim.Run(cfg)
	if err != nil {
		return err
	}

	a.logger.Debug("run complete",
		"run_id", summary.RunID, "hits", summary.Hits, "ev", summary.ExpectedValue,
		"elapsed", time.Since(start))

	writeReport(a.stdout, cfg, summary)

	if opts.dbPath == "" {
		return nil
	}

	db, err := store.Open(ctx, opts.dbPath)
	if err != nil {
		a.logger.Warn("results not saved", "path", opts.dbPath, "error", err)
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	absPath, err := filepath.Abs(db.Path())
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	id, err := db.InsertSummary(ctx, summary)
	if err != nil {
		a.logger.Warn("results not saved", "path", absPath, "error", err)
		return err
	}

	a.logger.Debug("saved run", "path", absPath, "row_id", id)
	fmt.Fprintf(a.stdout, "Saved results to %s\n", absPath)
	return nil
}
